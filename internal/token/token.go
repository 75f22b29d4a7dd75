package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is used when no access-token TTL is configured.
const DefaultTTL = 15 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// Manager issues and verifies signed bearer tokens. The secret and
// signing algorithm are fixed at construction from configuration and
// shared by every token the process handles.
type Manager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewManager builds a Manager from the configured secret, algorithm
// name and default TTL. Only HMAC algorithms are accepted: the secret
// is symmetric, and pinning the method blocks algorithm-confusion
// tokens at verification time.
func NewManager(secret, algorithm string, ttl time.Duration) (*Manager, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

// Issue creates a token for the subject with the manager's default TTL.
func (m *Manager) Issue(subject string) (string, error) {
	return m.IssueWithTTL(subject, m.ttl)
}

// IssueWithTTL creates a token for the subject expiring at now+ttl.
// Claims are signed but not encrypted; nothing secret goes in them.
func (m *Manager) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	tok := jwt.NewWithClaims(m.method, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns its subject.
// Malformed input, a bad signature, a foreign algorithm, a missing
// subject and an elapsed expiry all collapse into ErrInvalidToken; the
// caller must still resolve the subject to a live user.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{m.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
