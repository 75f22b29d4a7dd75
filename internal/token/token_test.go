package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	return m
}

func TestNewManagerRejectsBadAlgorithms(t *testing.T) {
	_, err := NewManager("s", "bogus", time.Minute)
	require.Error(t, err)

	// Asymmetric methods don't fit a shared-secret setup.
	_, err = NewManager("s", "RS256", time.Minute)
	require.Error(t, err)
}

func TestNewManagerDefaultTTL(t *testing.T) {
	m, err := NewManager("s", "HS256", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultTTL, m.ttl)
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	m := newManager(t)

	tok, err := m.Issue("a@x.com")
	require.NoError(t, err)

	subject, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newManager(t)

	tok, err := m.IssueWithTTL("a@x.com", -time.Second)
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyZeroTTLToken(t *testing.T) {
	m := newManager(t)

	tok, err := m.IssueWithTTL("a@x.com", 0)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newManager(t)
	other, err := NewManager("another-secret", "HS256", time.Minute)
	require.NoError(t, err)

	tok, err := other.Issue("a@x.com")
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyForeignAlgorithm(t *testing.T) {
	m := newManager(t)
	other, err := NewManager("test-secret", "HS512", time.Minute)
	require.NoError(t, err)

	tok, err := other.Issue("a@x.com")
	require.NoError(t, err)

	// Same secret, but the method is pinned at verification.
	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	m := newManager(t)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	m := newManager(t)

	tok, err := m.Issue("a@x.com")
	require.NoError(t, err)

	tampered := []byte(tok)
	tampered[len(tampered)/2] ^= 0x01
	_, err = m.Verify(string(tampered))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMissingSubject(t *testing.T) {
	m := newManager(t)

	tok, err := m.Issue("")
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}
