package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	var (
		providerErr  *domain.ProviderError
		exchangeErr  *domain.ExchangeError
		transportErr *domain.TransportError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedProvider),
		errors.Is(err, domain.ErrCredentialNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &providerErr):
		return upstreamStatus(providerErr.StatusCode)
	case errors.As(err, &exchangeErr):
		return upstreamStatus(exchangeErr.StatusCode)
	case errors.Is(err, domain.ErrMalformedRecord), errors.Is(err, domain.ErrPageLimitExceeded):
		return http.StatusBadGateway
	case errors.As(err, &transportErr):
		if transportErr.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// upstreamStatus passes provider 4xx responses through and reports
// anything else as a bad gateway.
func upstreamStatus(code int) int {
	if code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}

// abortWithError writes the JSON error body for err.
func abortWithError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(err, "%s %s", c.Request.Method, c.FullPath())
	} else {
		logger.Debug("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
