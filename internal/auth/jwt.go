package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSecret means the signing secret was never configured.
	ErrNoSecret = errors.New("jwt secret is not configured")
	// ErrInvalidToken covers every verification failure: bad structure,
	// signature mismatch, expired token. Callers get no further detail.
	ErrInvalidToken = errors.New("invalid or expired token")
)

const DefaultTTL = 7 * 24 * time.Hour

// Codec signs and verifies HS256 bearer tokens with a process-wide secret.
// The secret is loaded once at startup and never changes afterwards.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Encode signs the claims with HS256. An "exp" claim is injected (now + ttl)
// unless the caller already set one.
func (c *Codec) Encode(claims jwt.MapClaims) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNoSecret
	}
	out := jwt.MapClaims{}
	for k, v := range claims {
		out[k] = v
	}
	if _, ok := out["exp"]; !ok {
		out["exp"] = time.Now().Add(c.ttl).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, out)
	return token.SignedString(c.secret)
}

// Decode verifies the signature before trusting anything in the payload and
// rejects expired tokens. Any failure comes back as ErrInvalidToken.
func (c *Codec) Decode(tokenStr string) (jwt.MapClaims, error) {
	if len(c.secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// принимаем только HMAC (HS256 и т.п.)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
