package models

// Session status values reported by the identity provider.
const (
	StatusPending  = "pending"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// AuthSession tracks one authentication attempt. The provider issues a
// fresh OrderRef per attempt; it is never reused. A session only moves
// pending -> complete or pending -> failed.
type AuthSession struct {
	OrderRef       string          `json:"orderRef"`
	AutoStartToken string          `json:"autoStartToken,omitempty"`
	QrStartToken   string          `json:"qrStartToken,omitempty"`
	QrStartSecret  string          `json:"qrStartSecret,omitempty"`
	Status         string          `json:"status"`
	HintCode       string          `json:"hintCode,omitempty"`
	Completion     *CompletionData `json:"completionData,omitempty"`
}

// CompletionData is present exactly when Status is StatusComplete.
type CompletionData struct {
	User         VerifiedUser `json:"user"`
	IPAddress    string       `json:"ipAddress"`
	Signature    string       `json:"signature"`
	OcspResponse string       `json:"ocspResponse"`
}

// VerifiedUser is the identity asserted by the provider, not by us.
type VerifiedUser struct {
	PersonalNumber string `json:"personalNumber"`
	Name           string `json:"name"`
	GivenName      string `json:"givenName"`
	Surname        string `json:"surname"`
}

// Actions accepted by the internal e-ID endpoint.
const (
	ActionAuth   = "auth"
	ActionStatus = "status"
	ActionCancel = "cancel"
)

// EIDRequest is the internal API request the booking frontend posts.
type EIDRequest struct {
	Action         string `json:"action"`
	PersonalNumber string `json:"personalNumber,omitempty"`
	OrderRef       string `json:"orderRef,omitempty"`
	EndUserIP      string `json:"endUserIp,omitempty"`
}

// EIDResponse is the internal API answer. Success false or a non-2xx code
// is treated by the caller as a transport error.
type EIDResponse struct {
	Success        bool            `json:"success"`
	OrderRef       string          `json:"orderRef,omitempty"`
	AutoStartToken string          `json:"autoStartToken,omitempty"`
	QrStartToken   string          `json:"qrStartToken,omitempty"`
	QrStartSecret  string          `json:"qrStartSecret,omitempty"`
	BankIDURL      string          `json:"bankIdUrl,omitempty"`
	Status         string          `json:"status,omitempty"`
	HintCode       string          `json:"hintCode,omitempty"`
	Completion     *CompletionData `json:"completionData,omitempty"`
	Token          string          `json:"token,omitempty"`
	Message        string          `json:"message,omitempty"`
}
