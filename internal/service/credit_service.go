package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nordbook/eid-gateway/internal/config"
	"github.com/nordbook/eid-gateway/internal/models"
	"github.com/nordbook/eid-gateway/internal/personalnumber"
	"github.com/nordbook/eid-gateway/internal/repository"
	"github.com/nordbook/eid-gateway/internal/soap"
)

// ErrInvalidPersonalNumber is returned before any network call when the
// identity number cannot be normalized to a usable form.
var ErrInvalidPersonalNumber = errors.New("invalid personal number")

var _ CreditChecker = (*CreditService)(nil)

// CreditService performs single-shot credit risk evaluations against the
// bureau and derives the local business decision from the answer.
type CreditService struct {
	client *soap.Client
	cache  repository.CreditCacheRepository
	cfg    *config.Config
}

func NewCreditService(client *soap.Client, cache repository.CreditCacheRepository, cfg *config.Config) *CreditService {
	return &CreditService{client: client, cache: cache, cfg: cfg}
}

// PerformCreditCheck runs one evaluation. Transport and parse failures come
// back as Status error with no numerics populated; that outcome means
// "decision unavailable" and is never an approval or a rejection.
func (s *CreditService) PerformCreditCheck(ctx context.Context, rawPersonalNumber, clientIP string) (*models.CreditCheckResult, error) {
	if !personalnumber.Valid(rawPersonalNumber) {
		return nil, ErrInvalidPersonalNumber
	}
	if s.cfg.AuthFlow.StrictPersonalNumber && !personalnumber.ValidStrict(rawPersonalNumber) {
		return nil, ErrInvalidPersonalNumber
	}
	pn := personalnumber.Normalize(rawPersonalNumber)

	if cached, err := s.cache.Get(ctx, pn); err == nil {
		log.Debug().Msg("credit decision served from cache")
		return cached, nil
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		log.Warn().Err(err).Msg("credit cache lookup failed, querying bureau directly")
	}

	resp, err := s.client.Call(ctx, soap.Body{
		CreditCheck: &soap.CreditCheckRequest{
			PersonalNumber: pn,
			TemplateID:     s.cfg.Credit.TemplateID,
			IPAddress:      clientIP,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("credit check request failed")
		return &models.CreditCheckResult{Status: models.CreditError}, nil
	}
	if resp.CreditCheck == nil {
		log.Error().Msg("credit check response missing CreditCheckResult block")
		return &models.CreditCheckResult{Status: models.CreditError}, nil
	}

	result := &models.CreditCheckResult{
		RiskScore:   parseProviderAmount(resp.CreditCheck.RiskScore, "riskScore"),
		CreditLimit: parseProviderAmount(resp.CreditCheck.CreditLimit, "creditLimit"),
	}

	switch strings.ToLower(resp.CreditCheck.Status) {
	case models.CreditApproved:
		result.Status = models.CreditApproved
	case models.CreditRejected:
		result.Status = models.CreditRejected
		result.RejectCode = resp.CreditCheck.RejectCode
		policy := classifyReject(resp.CreditCheck.RejectCode)
		result.RejectReason = policy.Reason
		result.RequiresDeposit = policy.DepositAllowed
		if policy.DepositAllowed {
			result.DepositAmount = s.cfg.Credit.DepositAmount
		}
		log.Info().
			Str("rejectCode", result.RejectCode).
			Bool("requiresDeposit", result.RequiresDeposit).
			Msg("credit check rejected")
	default:
		log.Error().Str("status", resp.CreditCheck.Status).Msg("credit check returned unknown status")
		return &models.CreditCheckResult{Status: models.CreditError}, nil
	}

	// Unavailable decisions are never cached; the next attempt must ask
	// the bureau again.
	if err := s.cache.Store(ctx, pn, result, s.cfg.Credit.CacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache credit decision")
	}

	return result, nil
}

// parseProviderAmount converts a provider numeric leniently. A missing or
// unparseable value defaults to 0, but the omission is logged because it
// is not the same thing as a genuine zero.
func parseProviderAmount(raw, field string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		log.Warn().Str("field", field).Msg("provider omitted numeric field, defaulting to 0")
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		log.Warn().Str("field", field).Str("value", raw).Msg("unparseable numeric field, defaulting to 0")
		return 0
	}
	return value
}
