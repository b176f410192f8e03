package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	// DefaultCredentialTTL applies when a provider does not report expires_in.
	DefaultCredentialTTL = 3600 * time.Second
	// MaxCredentialTTL caps the lifetime a provider can report.
	MaxCredentialTTL = 365 * 24 * time.Hour
)

// Credential is the access credential returned by a provider's token
// exchange. Provider-specific response fields (HubSpot hub_id, Notion
// workspace_id, owner, ...) are kept in Extra and flattened back into
// the top-level JSON object on the wire.
type Credential struct {
	// AccessToken is the bearer token for API access.
	AccessToken string
	// TokenType is typically "bearer".
	TokenType string
	// RefreshToken is kept for completeness; refresh is not performed.
	RefreshToken string
	// ExpiresIn is the provider-reported lifetime in seconds (0 if absent).
	ExpiresIn int64
	// Extra holds every other field of the token response.
	Extra map[string]any
}

var credentialKeys = map[string]bool{
	"access_token":  true,
	"token_type":    true,
	"refresh_token": true,
	"expires_in":    true,
}

// TTL returns the provider-reported lifetime, or DefaultCredentialTTL
// when the provider did not report a positive value. Lifetimes longer
// than MaxCredentialTTL are capped.
func (c *Credential) TTL() time.Duration {
	if c.ExpiresIn <= 0 {
		return DefaultCredentialTTL
	}
	if c.ExpiresIn > int64(MaxCredentialTTL/time.Second) {
		return MaxCredentialTTL
	}
	return time.Duration(c.ExpiresIn) * time.Second
}

// ExtraString returns an Extra field rendered as a string, or "".
func (c *Credential) ExtraString(key string) string {
	v, ok := c.Extra[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

// SetExtra records a provider-specific field.
func (c *Credential) SetExtra(key string, value any) {
	if c.Extra == nil {
		c.Extra = make(map[string]any)
	}
	c.Extra[key] = value
}

// MarshalJSON flattens Extra next to the standard token fields.
func (c Credential) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+4)
	for k, v := range c.Extra {
		if credentialKeys[k] {
			continue
		}
		out[k] = v
	}
	out["access_token"] = c.AccessToken
	if c.TokenType != "" {
		out["token_type"] = c.TokenType
	}
	if c.RefreshToken != "" {
		out["refresh_token"] = c.RefreshToken
	}
	if c.ExpiresIn > 0 {
		out["expires_in"] = c.ExpiresIn
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts a provider token response or a stored credential.
func (c *Credential) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*c = Credential{}
	for k, v := range raw {
		switch k {
		case "access_token":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("access_token: expected string, got %T", v)
			}
			c.AccessToken = s
		case "token_type":
			c.TokenType, _ = v.(string)
		case "refresh_token":
			c.RefreshToken, _ = v.(string)
		case "expires_in":
			n, err := parseSeconds(v)
			if err != nil {
				return fmt.Errorf("expires_in: %w", err)
			}
			c.ExpiresIn = n
		default:
			c.SetExtra(k, v)
		}
	}
	return nil
}

func parseSeconds(v any) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	case string:
		if t == "" {
			return 0, nil
		}
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
