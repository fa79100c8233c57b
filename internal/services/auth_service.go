package services

import (
	"log"
	"strings"

	"ycsmatch/internal/auth"
	"ycsmatch/internal/models"
	"ycsmatch/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(email, password string) (string, *models.User, error)
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

type authService struct {
	userRepo repositories.UserRepository
	codec    *auth.Codec
}

func NewAuthService(userRepo repositories.UserRepository, codec *auth.Codec) AuthService {
	return &authService{userRepo: userRepo, codec: codec}
}

// Login verifies the credentials and issues a signed bearer token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *authService) Login(email, password string) (string, *models.User, error) {
	// the password is compared as-is: whatever bytes were hashed at
	// registration or reset must verify here, whitespace included
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		log.Printf("[auth][login] user not found by email=%q", email)
		return "", nil, ErrInvalidCredentials
	}
	if !s.CheckPassword(user.PasswordHash, password) {
		log.Printf("[auth][login] bcrypt mismatch for userID=%d", user.ID)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.codec.Encode(jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
