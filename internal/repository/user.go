package repository

import (
	"database/sql"
	"errors"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already taken")
)

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (email, password_hash, salt) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.QueryRowx(query, user.Email, user.PasswordHash, user.Salt).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		// 23505 = unique_violation, raced with a concurrent registration
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		r.logger.Error("Failed to insert user", zap.Error(err))
		return err
	}
	return nil
}

// GetUserByEmail looks up a user by exact, case-sensitive email match.
func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password_hash, salt, created_at FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("Failed to query user by email", zap.Error(err))
		return nil, err
	}
	return &user, nil
}
