package domain

import (
	"fmt"
	"strings"
)

const keySeparator = ":"

// Scope is the (provider, organisation, user) triple that namespaces
// every value held in the credential store.
type Scope struct {
	Provider ProviderType
	OrgID    string
	UserID   string
}

// NewScope builds a scope and validates it.
func NewScope(provider ProviderType, orgID, userID string) (Scope, error) {
	s := Scope{Provider: provider, OrgID: orgID, UserID: userID}
	if err := s.Validate(); err != nil {
		return Scope{}, err
	}
	return s, nil
}

// Validate rejects empty members and members containing the key separator,
// which would let one scope address another scope's keys.
func (s Scope) Validate() error {
	parts := map[string]string{
		"provider": string(s.Provider),
		"org_id":   s.OrgID,
		"user_id":  s.UserID,
	}
	for _, name := range []string{"provider", "org_id", "user_id"} {
		v := parts[name]
		if v == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
		}
		if strings.Contains(v, keySeparator) {
			return fmt.Errorf("%w: %s must not contain %q", ErrInvalidInput, name, keySeparator)
		}
	}
	return nil
}

// StateKey returns the store key of the pending CSRF state.
func (s Scope) StateKey() string {
	return s.key("state")
}

// TokenKey returns the store key of the cached access credential.
func (s Scope) TokenKey() string {
	return s.key("token")
}

func (s Scope) key(suffix string) string {
	return strings.Join([]string{string(s.Provider), s.OrgID, s.UserID, suffix}, keySeparator)
}
