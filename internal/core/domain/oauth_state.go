package domain

// StateRecord is the CSRF state issued at authorize time. The same shape
// is stored under Scope.StateKey and embedded, encoded, in the
// authorization URL.
type StateRecord struct {
	Token  string `json:"state"`
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
}

// Scope returns the scope the state was issued for.
func (r StateRecord) Scope(provider ProviderType) Scope {
	return Scope{Provider: provider, OrgID: r.OrgID, UserID: r.UserID}
}
