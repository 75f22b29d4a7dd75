package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// failingDriver refuses every connection, so every query surfaces an
// unexpected store error.
type failingDriver struct{}

func (failingDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("connection refused")
}

func init() {
	sql.Register("failing", failingDriver{})
}

func newFailingDB(t *testing.T) (*sqlx.DB, *observer.ObservedLogs, *zap.Logger) {
	t.Helper()
	core, logs := observer.New(zap.ErrorLevel)
	db, err := sql.Open("failing", "")
	require.NoError(t, err) // sql.Open does not connect
	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = sqlxDB.Close() })
	return sqlxDB, logs, zap.New(core)
}

func TestUserRepositoryLogsUnexpectedErrors(t *testing.T) {
	db, logs, logger := newFailingDB(t)
	repo := NewUserRepository(db, logger)

	err := repo.CreateUser(&models.User{Email: "a@x.com", PasswordHash: []byte("h"), Salt: []byte("s")})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDuplicateEmail)

	_, err = repo.GetUserByEmail("a@x.com")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUserNotFound)

	require.Equal(t, 1, logs.FilterMessage("Failed to insert user").Len())
	require.Equal(t, 1, logs.FilterMessage("Failed to query user by email").Len())
}

func TestMessageRepositoryLogsUnexpectedErrors(t *testing.T) {
	db, logs, logger := newFailingDB(t)
	repo := NewMessageRepository(db, logger)

	err := repo.SaveMessage(&models.Message{Content: "hi", SenderID: 1, ReceiverID: 2})
	require.Error(t, err)

	_, err = repo.GetInbox(2)
	require.Error(t, err)

	_, err = repo.ClaimUnseen(2)
	require.Error(t, err)

	require.Equal(t, 1, logs.FilterMessage("Failed to insert message").Len())
	require.Equal(t, 1, logs.FilterMessage("Failed to query inbox").Len())
	require.Equal(t, 1, logs.FilterMessage("Failed to claim unseen messages").Len())
}
