package services

import (
	"log"
	"strings"
	"time"

	"ycsmatch/internal/repositories"
	"ycsmatch/internal/utils"
)

const resetTokenTTL = 1 * time.Hour

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(token, newPassword string) error
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	repo     repositories.PasswordResetRepository
	emails   EmailService
	auth     AuthService
}

func NewPasswordResetService(userRepo repositories.UserRepository, repo repositories.PasswordResetRepository, emails EmailService, auth AuthService) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		repo:     repo,
		emails:   emails,
		auth:     auth,
	}
}

// RequestReset never reports whether the email is registered: a malformed or
// unknown address comes back as the same nil as the real path. Only store
// failures surface.
func (s *passwordResetService) RequestReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		log.Printf("[password-reset] request with malformed email, ignoring")
		return nil
	}
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		// don't leak existence
		log.Printf("[password-reset] request for unknown email, ignoring")
		return nil
	}

	token, err := utils.NewResetToken(32)
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	if _, err := s.repo.Create(user.Email, token, expires); err != nil {
		return err
	}

	// Each request inserts a fresh row; earlier unconsumed tokens for the
	// same email stay valid until they expire on their own.
	if s.emails != nil {
		if err := s.emails.SendPasswordResetEmail(user.Email, token); err != nil {
			log.Printf("[password-reset] failed to send email to %s: %v", user.Email, err)
		}
	}
	return nil
}

// ResetPassword consumes the token before touching the user row, so the same
// token can never authorize two changes even when calls race.
func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || len(newPassword) < 8 {
		return ErrInvalidResetInput
	}

	rt, err := s.repo.Consume(token)
	if err != nil {
		return err
	}
	if rt == nil {
		return ErrTokenInvalid
	}
	if time.Now().After(rt.ExpiresAt) {
		// the consume above already removed the stale row
		return ErrTokenExpired
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePasswordByEmail(rt.Email, hash)
}
