package services

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// stateTokenBytes is the entropy of a CSRF state token.
const stateTokenBytes = 32

// generateStateToken creates a random URL-safe token for CSRF protection.
func generateStateToken() (string, error) {
	bytes := make([]byte, stateTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// encodeState renders the opaque state parameter embedded in the
// authorization URL.
func encodeState(rec domain.StateRecord) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// decodeState parses a state parameter. Padded input is accepted since
// some providers re-encode the parameter.
func decodeState(s string) (domain.StateRecord, error) {
	var rec domain.StateRecord
	if s == "" {
		return rec, fmt.Errorf("%w: empty state", domain.ErrInvalidState)
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return rec, fmt.Errorf("%w: decode state: %v", domain.ErrInvalidState, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("%w: parse state: %v", domain.ErrInvalidState, err)
	}
	if rec.Token == "" || rec.UserID == "" || rec.OrgID == "" {
		return rec, fmt.Errorf("%w: incomplete state", domain.ErrInvalidState)
	}
	return rec, nil
}
