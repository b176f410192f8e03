package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput), http.StatusBadRequest},
		{"invalid state", fmt.Errorf("%w: state mismatch", domain.ErrInvalidState), http.StatusBadRequest},
		{"unknown provider", domain.ErrUnsupportedProvider, http.StatusNotFound},
		{"no credential", fmt.Errorf("%w: notion:o:u:token", domain.ErrCredentialNotFound), http.StatusNotFound},
		{"provider 401", &domain.ProviderError{StatusCode: 401}, http.StatusUnauthorized},
		{"provider 429", fmt.Errorf("fetch: %w", &domain.ProviderError{StatusCode: 429}), http.StatusTooManyRequests},
		{"provider 500", &domain.ProviderError{StatusCode: 500}, http.StatusBadGateway},
		{"exchange 400", &domain.ExchangeError{StatusCode: 400}, http.StatusBadRequest},
		{"malformed", &domain.MalformedRecordError{Index: 3}, http.StatusBadGateway},
		{"page cap", domain.ErrPageLimitExceeded, http.StatusBadGateway},
		{"transport timeout", domain.NewTransportError("fetch page", timeoutErr{}), http.StatusGatewayTimeout},
		{"transport", domain.NewTransportError("fetch page", errors.New("connection refused")), http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"not configured", domain.ErrProviderNotConfigured, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}
