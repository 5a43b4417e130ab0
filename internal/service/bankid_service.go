package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nordbook/eid-gateway/internal/models"
	"github.com/nordbook/eid-gateway/internal/soap"
)

var _ IdentityProvider = (*BankIDService)(nil)

// BankIDService talks to the e-ID provider over its SOAP endpoint.
type BankIDService struct {
	client *soap.Client
}

func NewBankIDService(client *soap.Client) *BankIDService {
	return &BankIDService{client: client}
}

// Initiate starts a new authentication session. An empty personalNumber is
// the same-device flow: the element is omitted from the envelope and the
// provider resolves the end-user device itself.
func (s *BankIDService) Initiate(ctx context.Context, personalNumber, clientIP string) (*models.AuthSession, error) {
	resp, err := s.client.Call(ctx, soap.Body{
		Auth: &soap.AuthRequest{
			PersonalNumber: personalNumber,
			EndUserIP:      clientIP,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("BankID auth request failed")
		return nil, fmt.Errorf("failed to initiate authentication: %w", err)
	}
	if resp.Auth == nil || resp.Auth.OrderRef == "" {
		log.Error().Msg("BankID auth response missing AuthResult block")
		return nil, fmt.Errorf("%w: AuthResult block missing", soap.ErrProtocol)
	}

	log.Info().
		Str("orderRef", resp.Auth.OrderRef).
		Bool("sameDevice", personalNumber == "").
		Msg("BankID authentication started")

	return &models.AuthSession{
		OrderRef:       resp.Auth.OrderRef,
		AutoStartToken: resp.Auth.AutoStartToken,
		QrStartToken:   resp.Auth.QrStartToken,
		QrStartSecret:  resp.Auth.QrStartSecret,
		Status:         models.StatusPending,
	}, nil
}

// Collect performs exactly one status poll. Completion data is parsed only
// when the provider reports complete; a provider-reported failure comes
// back as Status failed so the orchestrator can tell it apart from a
// transport or protocol error.
func (s *BankIDService) Collect(ctx context.Context, orderRef string) (*models.AuthSession, error) {
	resp, err := s.client.Call(ctx, soap.Body{
		Status: &soap.StatusRequest{OrderRef: orderRef},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect session status: %w", err)
	}
	if resp.Status == nil {
		return nil, fmt.Errorf("%w: StatusResult block missing", soap.ErrProtocol)
	}

	session := &models.AuthSession{
		OrderRef: orderRef,
		HintCode: resp.Status.HintCode,
	}

	switch strings.ToLower(resp.Status.Status) {
	case models.StatusComplete:
		if resp.Status.User == nil {
			return nil, fmt.Errorf("%w: completion block missing on complete status", soap.ErrProtocol)
		}
		session.Status = models.StatusComplete
		session.Completion = &models.CompletionData{
			User: models.VerifiedUser{
				PersonalNumber: resp.Status.User.PersonalNumber,
				Name:           resp.Status.User.Name,
				GivenName:      resp.Status.User.GivenName,
				Surname:        resp.Status.User.Surname,
			},
			Signature:    resp.Status.Signature,
			OcspResponse: resp.Status.OcspResponse,
		}
		if resp.Status.Device != nil {
			session.Completion.IPAddress = resp.Status.Device.IPAddress
		}
		log.Info().Str("orderRef", orderRef).Msg("BankID authentication completed")
	case models.StatusFailed:
		session.Status = models.StatusFailed
		log.Info().Str("orderRef", orderRef).Str("hintCode", resp.Status.HintCode).Msg("BankID authentication failed")
	case models.StatusPending:
		session.Status = models.StatusPending
	default:
		return nil, fmt.Errorf("%w: unknown status %q", soap.ErrProtocol, resp.Status.Status)
	}

	return session, nil
}

// Cancel tells the provider to drop the session. Best-effort: a remote
// failure is logged and swallowed because the local cancellation must
// always succeed from the user's point of view.
func (s *BankIDService) Cancel(ctx context.Context, orderRef string) error {
	if _, err := s.client.Call(ctx, soap.Body{
		Cancel: &soap.CancelRequest{OrderRef: orderRef},
	}); err != nil {
		log.Warn().Err(err).Str("orderRef", orderRef).Msg("BankID cancel could not be confirmed remotely")
	}
	return nil
}
