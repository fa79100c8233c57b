package handlers_test

import (
	"strings"
	"time"

	"ycsmatch/internal/models"
)

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*models.User{}}
}

func (r *memUserRepo) Create(user *models.User) error {
	user.ID = len(r.users) + 1
	r.users[strings.ToLower(user.Email)] = user
	return nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) UpdatePasswordByEmail(email, passwordHash string) error {
	if u, ok := r.users[strings.ToLower(email)]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

type memResetRepo struct {
	rows map[string]*models.ResetToken
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{rows: map[string]*models.ResetToken{}}
}

func (r *memResetRepo) Create(email, token string, expiresAt time.Time) (*models.ResetToken, error) {
	rt := &models.ResetToken{Email: email, Token: token, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	r.rows[token] = rt
	return rt, nil
}

func (r *memResetRepo) GetByToken(token string) (*models.ResetToken, error) {
	rt, ok := r.rows[token]
	if !ok {
		return nil, nil
	}
	return rt, nil
}

func (r *memResetRepo) Consume(token string) (*models.ResetToken, error) {
	rt, ok := r.rows[token]
	if !ok {
		return nil, nil
	}
	delete(r.rows, token)
	return rt, nil
}

type memEmailService struct {
	sentTokens []string
}

func (s *memEmailService) SendPasswordResetEmail(email, token string) error {
	s.sentTokens = append(s.sentTokens, token)
	return nil
}
