package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nordbook/eid-gateway/internal/config"
	"github.com/nordbook/eid-gateway/internal/mocks"
	"github.com/nordbook/eid-gateway/internal/models"
	"github.com/nordbook/eid-gateway/internal/repository"
	"github.com/nordbook/eid-gateway/internal/repository/memory"
	"github.com/nordbook/eid-gateway/internal/soap"
)

func newCreditTestConfig() *config.Config {
	return &config.Config{
		Credit: config.CreditConfig{
			TemplateID:    "1",
			CacheTTL:      time.Minute,
			DepositAmount: 1500,
		},
	}
}

func newCreditService(serverURL string, cache repository.CreditCacheRepository, cfg *config.Config) *CreditService {
	return NewCreditService(soap.NewClient(serverURL, "acme", "s3cret", 2*time.Second), cache, cfg)
}

func creditFixture(status, rejectCode, riskScore, creditLimit string) string {
	return `<Envelope><Body><CreditCheckResult>
  <Status>` + status + `</Status>
  <RejectCode>` + rejectCode + `</RejectCode>
  <RiskScore>` + riskScore + `</RiskScore>
  <CreditLimit>` + creditLimit + `</CreditLimit>
</CreditCheckResult></Body></Envelope>`
}

func TestCreditService_PerformCreditCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("Approved", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(creditFixture("approved", "", "742", "25000")))
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())
		result, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.CreditApproved, result.Status)
		assert.Equal(t, 742.0, result.RiskScore)
		assert.Equal(t, 25000.0, result.CreditLimit)
		assert.False(t, result.RequiresDeposit)
		assert.Empty(t, result.RejectCode)
	})

	t.Run("RejectedRecoverableCodeOffersDeposit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(creditFixture("rejected", RejectExcessiveDebt, "312", "0")))
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())
		result, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.CreditRejected, result.Status)
		assert.Equal(t, RejectExcessiveDebt, result.RejectCode)
		assert.Equal(t, "Registered debt exceeds the accepted threshold", result.RejectReason)
		assert.True(t, result.RequiresDeposit)
		assert.Equal(t, 1500.0, result.DepositAmount)
	})

	t.Run("RejectedSecurityCodeNeverOffersDeposit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(creditFixture("rejected", RejectSecurityRisk, "0", "0")))
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())
		result, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.CreditRejected, result.Status)
		assert.False(t, result.RequiresDeposit)
		assert.Zero(t, result.DepositAmount)
	})

	t.Run("UnknownRejectCodeFallsBackToGenericReason", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(creditFixture("rejected", "REJECT_99", "100", "0")))
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())
		result, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.CreditRejected, result.Status)
		assert.Equal(t, "Credit check not approved", result.RejectReason)
		assert.False(t, result.RequiresDeposit)
	})

	t.Run("MissingNumericsDefaultToZero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<Envelope><Body><CreditCheckResult><Status>approved</Status></CreditCheckResult></Body></Envelope>`))
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())
		result, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.CreditApproved, result.Status)
		assert.Zero(t, result.RiskScore)
		assert.Zero(t, result.CreditLimit)
	})

	t.Run("TransportFailureMeansDecisionUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())
		result, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.CreditError, result.Status)
		assert.Zero(t, result.RiskScore)
		assert.Zero(t, result.CreditLimit)
		assert.False(t, result.RequiresDeposit)
	})

	t.Run("MissingResultBlockMeansDecisionUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<Envelope><Body></Body></Envelope>`))
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())
		result, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.CreditError, result.Status)
	})

	t.Run("InvalidPersonalNumberNeverReachesTheBureau", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())
		_, err := svc.PerformCreditCheck(ctx, "123", "192.0.2.10")
		require.ErrorIs(t, err, ErrInvalidPersonalNumber)
		assert.Zero(t, hits.Load())
	})

	t.Run("StrictModeEnforcesCheckDigit", func(t *testing.T) {
		cfg := newCreditTestConfig()
		cfg.AuthFlow.StrictPersonalNumber = true

		svc := newCreditService("http://127.0.0.1:0", memory.NewMemoryCreditCacheRepository(), cfg)
		// Length is fine but the check digit is wrong.
		_, err := svc.PerformCreditCheck(ctx, "811218-9875", "192.0.2.10")
		require.ErrorIs(t, err, ErrInvalidPersonalNumber)
	})

	t.Run("SecondCheckIsServedFromCache", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Write([]byte(creditFixture("approved", "", "742", "25000")))
		}))
		defer server.Close()

		svc := newCreditService(server.URL, memory.NewMemoryCreditCacheRepository(), newCreditTestConfig())

		first, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		second, err := svc.PerformCreditCheck(ctx, "19850101-1234", "192.0.2.10")
		require.NoError(t, err)

		assert.Equal(t, first, second, "normalization must give both calls the same cache key")
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("UnavailableDecisionIsNotCached", func(t *testing.T) {
		mockCache := new(mocks.MockCreditCacheRepository)
		mockCache.On("Get", mock.Anything).Return(nil, repository.ErrCacheMiss)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		svc := newCreditService(server.URL, mockCache, newCreditTestConfig())
		result, err := svc.PerformCreditCheck(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.CreditError, result.Status)
		mockCache.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})
}
