package repositories

import (
	"database/sql"
	"time"

	"ycsmatch/internal/models"
)

type PasswordResetRepository interface {
	Create(email, token string, expiresAt time.Time) (*models.ResetToken, error)
	GetByToken(token string) (*models.ResetToken, error)
	Consume(token string) (*models.ResetToken, error)
}

type passwordResetRepository struct {
	DB *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{DB: db}
}

func (r *passwordResetRepository) Create(email, token string, expiresAt time.Time) (*models.ResetToken, error) {
	const q = `
                INSERT INTO password_reset_tokens (email, token, expires_at)
                VALUES ($1, $2, $3)
                RETURNING created_at
        `
	rt := &models.ResetToken{Email: email, Token: token, ExpiresAt: expiresAt}
	if err := r.DB.QueryRow(q, email, token, expiresAt).Scan(&rt.CreatedAt); err != nil {
		return nil, err
	}
	return rt, nil
}

// GetByToken returns (nil, nil) when the token does not exist.
func (r *passwordResetRepository) GetByToken(token string) (*models.ResetToken, error) {
	const q = `
                SELECT email, token, expires_at, created_at
                FROM password_reset_tokens
                WHERE token = $1
        `
	rt := &models.ResetToken{}
	err := r.DB.QueryRow(q, token).Scan(&rt.Email, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Consume deletes the token row and returns it. The DELETE..RETURNING is a
// single statement, so under concurrent calls with the same token exactly one
// caller gets the row back; everyone else gets (nil, nil).
func (r *passwordResetRepository) Consume(token string) (*models.ResetToken, error) {
	const q = `
                DELETE FROM password_reset_tokens
                WHERE token = $1
                RETURNING email, token, expires_at, created_at
        `
	rt := &models.ResetToken{}
	err := r.DB.QueryRow(q, token).Scan(&rt.Email, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}
