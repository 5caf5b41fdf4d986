package auth

// Principal identifies an authenticated destination-platform user.
//
// Callers thread a Principal explicitly into operations that need one; there
// is no ambient or thread-local security context.
type Principal interface {
	// AccountID returns the platform-local account identifier.
	AccountID() string

	// DisplayName returns a human-readable name for the account.
	DisplayName() string
}

// SessionPrincipal identifies a user established through the OAuth
// authorization-code flow, carrying profile attributes from the provider.
type SessionPrincipal struct {
	id   string
	name string
}

// NewSessionPrincipal creates a Principal from provider profile attributes.
// An empty display name falls back to the account id.
func NewSessionPrincipal(accountID, displayName string) SessionPrincipal {
	if displayName == "" {
		displayName = accountID
	}
	return SessionPrincipal{id: accountID, name: displayName}
}

func (p SessionPrincipal) AccountID() string   { return p.id }
func (p SessionPrincipal) DisplayName() string { return p.name }

// TokenPrincipal identifies a user known only by a bearer token and the
// account id it was issued for.
type TokenPrincipal struct {
	id string
}

// NewTokenPrincipal creates a Principal for token-based identification.
func NewTokenPrincipal(accountID string) TokenPrincipal {
	return TokenPrincipal{id: accountID}
}

func (p TokenPrincipal) AccountID() string   { return p.id }
func (p TokenPrincipal) DisplayName() string { return p.id }
