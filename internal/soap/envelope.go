// Package soap holds the typed envelope schema shared by the identity
// provider and the credit bureau, plus the HTTP client that ships it.
// Both providers wrap every operation in the same outer shape: a header
// carrying the account credentials and a body carrying exactly one
// operation payload.
package soap

import "encoding/xml"

const envelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// Envelope is the outgoing request wrapper. Serialization goes through
// encoding/xml so untrusted strings are escaped by the codec, never by hand.
type Envelope struct {
	XMLName   xml.Name `xml:"soap:Envelope"`
	Namespace string   `xml:"xmlns:soap,attr"`
	Header    Header   `xml:"soap:Header"`
	Body      Body     `xml:"soap:Body"`
}

type Header struct {
	Credentials Credentials `xml:"Credentials"`
}

type Credentials struct {
	Username string `xml:"Username"`
	Password string `xml:"Password"`
}

// Body carries exactly one of the four operation payloads.
type Body struct {
	Auth        *AuthRequest        `xml:"AuthRequest,omitempty"`
	Status      *StatusRequest      `xml:"StatusRequest,omitempty"`
	Cancel      *CancelRequest      `xml:"CancelRequest,omitempty"`
	CreditCheck *CreditCheckRequest `xml:"CreditCheckRequest,omitempty"`
}

// AuthRequest starts an authentication session. An empty PersonalNumber
// selects the same-device flow; the element must then be absent entirely,
// since the provider treats an empty element differently from a missing one.
type AuthRequest struct {
	PersonalNumber string `xml:"personalNumber,omitempty"`
	EndUserIP      string `xml:"endUserIp"`
}

type StatusRequest struct {
	OrderRef string `xml:"orderRef"`
}

type CancelRequest struct {
	OrderRef string `xml:"orderRef"`
}

type CreditCheckRequest struct {
	PersonalNumber string `xml:"personalNumber"`
	TemplateID     string `xml:"templateId"`
	IPAddress      string `xml:"ipAddress,omitempty"`
}

// NewEnvelope wraps one operation body with the account credentials.
func NewEnvelope(creds Credentials, body Body) Envelope {
	return Envelope{
		Namespace: envelopeNamespace,
		Header:    Header{Credentials: creds},
		Body:      body,
	}
}

// ResponseEnvelope mirrors the request shape; each operation answers with a
// *Result block. Element matching is by local name, so the provider's
// namespace prefixes do not matter.
type ResponseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    ResponseBody `xml:"Body"`
}

type ResponseBody struct {
	Auth        *AuthResult        `xml:"AuthResult"`
	Status      *StatusResult      `xml:"StatusResult"`
	Cancel      *CancelResult      `xml:"CancelResult"`
	CreditCheck *CreditCheckResult `xml:"CreditCheckResult"`
}

type AuthResult struct {
	OrderRef       string `xml:"OrderRef"`
	AutoStartToken string `xml:"AutoStartToken"`
	QrStartToken   string `xml:"QrStartToken"`
	QrStartSecret  string `xml:"QrStartSecret"`
}

// StatusResult reports where the session is. The User/Device/Signature
// block is present only when Status is "complete".
type StatusResult struct {
	Status       string            `xml:"Status"`
	HintCode     string            `xml:"HintCode"`
	User         *CompletionUser   `xml:"User"`
	Device       *CompletionDevice `xml:"Device"`
	Signature    string            `xml:"Signature"`
	OcspResponse string            `xml:"OcspResponse"`
}

type CompletionUser struct {
	PersonalNumber string `xml:"PersonalNumber"`
	Name           string `xml:"Name"`
	GivenName      string `xml:"GivenName"`
	Surname        string `xml:"Surname"`
}

type CompletionDevice struct {
	IPAddress string `xml:"IpAddress"`
}

type CancelResult struct {
	Status string `xml:"Status"`
}

// CreditCheckResult keeps the numeric fields as raw text; the caller parses
// them leniently so a provider omission can be told apart from a real zero.
type CreditCheckResult struct {
	Status      string `xml:"Status"`
	RejectCode  string `xml:"RejectCode"`
	RiskScore   string `xml:"RiskScore"`
	CreditLimit string `xml:"CreditLimit"`
}
