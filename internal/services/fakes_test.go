package services

import (
	"errors"
	"strings"
	"time"

	"ycsmatch/internal/models"
)

// in-memory stand-ins for the postgres repositories

type fakeUserRepo struct {
	users       map[string]*models.User // keyed by lower-cased email
	lookupCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = len(r.users) + 1
	r.users[strings.ToLower(user.Email)] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.lookupCalls++
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePasswordByEmail(email, passwordHash string) error {
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeResetRepo struct {
	rows map[string]*models.ResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{rows: map[string]*models.ResetToken{}}
}

func (r *fakeResetRepo) Create(email, token string, expiresAt time.Time) (*models.ResetToken, error) {
	rt := &models.ResetToken{Email: email, Token: token, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	r.rows[token] = rt
	return rt, nil
}

func (r *fakeResetRepo) GetByToken(token string) (*models.ResetToken, error) {
	rt, ok := r.rows[token]
	if !ok {
		return nil, nil
	}
	return rt, nil
}

func (r *fakeResetRepo) Consume(token string) (*models.ResetToken, error) {
	rt, ok := r.rows[token]
	if !ok {
		return nil, nil
	}
	delete(r.rows, token)
	return rt, nil
}

type fakeEmailService struct {
	sentTo     []string
	sentTokens []string
	fail       bool
}

func (s *fakeEmailService) SendPasswordResetEmail(email, token string) error {
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sentTo = append(s.sentTo, email)
	s.sentTokens = append(s.sentTokens, token)
	return nil
}
