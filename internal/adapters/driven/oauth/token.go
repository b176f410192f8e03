// Package oauth provides OAuth token exchange against provider token endpoints.
package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// DefaultTimeout bounds a token exchange round trip.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a token response is read.
const maxBodyBytes = 1 << 20

// Encoding selects the token request body format.
type Encoding int

const (
	// EncodingForm posts application/x-www-form-urlencoded (RFC 6749).
	EncodingForm Encoding = iota
	// EncodingJSON posts application/json, as Notion requires.
	EncodingJSON
)

// ExchangeRequest describes one authorization code exchange.
type ExchangeRequest struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Code         string
	RedirectURI  string
	// AuthStyle places client credentials in the body (AuthStyleInParams)
	// or in a Basic Authorization header (AuthStyleInHeader).
	AuthStyle oauth2.AuthStyle
	Encoding  Encoding
}

// NewHTTPClient returns a client with the exchange timeout applied.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// ExchangeCode trades an authorization code for a credential.
// Non-2xx responses return *domain.ExchangeError carrying the body
// verbatim; network failures return *domain.TransportError.
func ExchangeCode(ctx context.Context, client *http.Client, r ExchangeRequest) (*domain.Credential, error) {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}

	req, err := newTokenRequest(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.NewTransportError("token exchange", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewTransportError("token exchange", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.ExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var cred domain.Credential
	if err := json.Unmarshal(body, &cred); err != nil {
		return nil, &domain.ExchangeError{
			StatusCode: resp.StatusCode,
			Body:       fmt.Sprintf("decode token response: %v: %s", err, body),
		}
	}
	return &cred, nil
}

func newTokenRequest(ctx context.Context, r ExchangeRequest) (*http.Request, error) {
	params := map[string]string{
		"grant_type":   "authorization_code",
		"code":         r.Code,
		"redirect_uri": r.RedirectURI,
	}
	if r.AuthStyle != oauth2.AuthStyleInHeader {
		params["client_id"] = r.ClientID
		params["client_secret"] = r.ClientSecret
	}

	var (
		body        io.Reader
		contentType string
	)
	switch r.Encoding {
	case EncodingJSON:
		data, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	default:
		form := url.Values{}
		for k, v := range params {
			form.Set(k, v)
		}
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.TokenURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if r.AuthStyle == oauth2.AuthStyleInHeader {
		req.SetBasicAuth(url.QueryEscape(r.ClientID), url.QueryEscape(r.ClientSecret))
	}
	return req, nil
}
