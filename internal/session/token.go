package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenParser never verifies signatures: the client has no key material and
// only wants to read the expiry claim.
var tokenParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// ExpiresWithin reports whether the access token's exp claim falls within d
// from now. Tokens without a parsable exp claim report false; their expiry is
// only discovered through a 401.
func (m *Manager) ExpiresWithin(d time.Duration) bool {
	token := m.Token()
	if token == "" {
		return false
	}

	expiry, err := tokenExpiry(token)
	if err != nil {
		return false
	}

	return time.Now().Add(d).After(expiry)
}

func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := tokenParser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, jwt.ErrTokenRequiredClaimMissing
	}

	return claims.ExpiresAt.Time, nil
}
