package repositories

import (
	"database/sql"

	"ycsmatch/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	UpdatePasswordByEmail(email, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRow(q, user.Email, user.PasswordHash, user.Role).Scan(&user.ID)
}

// GetByEmail matches case-insensitively; returns (nil, nil) when no user exists.
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, email, password_hash, role
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	u := &models.User{}
	err := r.DB.QueryRow(q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdatePasswordByEmail(email, passwordHash string) error {
	const q = `
		UPDATE users SET password_hash = $1 WHERE LOWER(email) = LOWER($2)
	`
	_, err := r.DB.Exec(q, passwordHash, email)
	return err
}
