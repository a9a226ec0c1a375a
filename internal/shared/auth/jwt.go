package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// Issuer is stamped on every session token this service signs.
	Issuer = "jobassist"
	// SessionTTL is how long a login stays valid.
	SessionTTL = 7 * 24 * time.Hour
)

// Claims is the session identity carried in a token.
type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Iss   string `json:"iss,omitempty"`
	Exp   int64  `json:"exp,omitempty"`
	Iat   int64  `json:"iat,omitempty"`
}

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = fmt.Errorf("%w: expired", ErrInvalidToken)
	errNoSecret      = errors.New("JWT_SECRET required outside dev")
	errNoSubject     = errors.New("sub is required")
	b64              = base64.RawURLEncoding
	hs256Header      = b64.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	devSigningSecret = []byte("dev-secret")
)

// Signer issues and checks HS256 session tokens.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret, now: time.Now}
}

// Sign fills iat, exp and iss when unset and returns the compact token.
func (s *Signer) Sign(c Claims) (string, error) {
	if c.Sub == "" {
		return "", errNoSubject
	}
	now := s.now().UTC()
	if c.Iat == 0 {
		c.Iat = now.Unix()
	}
	if c.Exp == 0 {
		c.Exp = now.Add(SessionTTL).Unix()
	}
	if c.Iss == "" {
		c.Iss = Issuer
	}
	body, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	unsigned := hs256Header + "." + b64.EncodeToString(body)
	return unsigned + "." + s.mac(unsigned), nil
}

// Verify checks signature, issuer and expiry. Every failure wraps
// ErrInvalidToken.
func (s *Signer) Verify(token string) (Claims, error) {
	head, rest, ok := strings.Cut(token, ".")
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	payload, sig, ok := strings.Cut(rest, ".")
	if !ok || strings.Contains(sig, ".") {
		return Claims{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(s.mac(head+"."+payload))) {
		return Claims{}, ErrInvalidToken
	}

	raw, err := b64.DecodeString(payload)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var c Claims
	if err := json.Unmarshal(raw, &c); err != nil || c.Sub == "" {
		return Claims{}, ErrInvalidToken
	}
	if c.Iss != "" && c.Iss != Issuer {
		return Claims{}, ErrInvalidToken
	}
	if c.Exp > 0 && s.now().UTC().Unix() > c.Exp {
		return Claims{}, ErrExpiredToken
	}
	return c, nil
}

func (s *Signer) mac(unsigned string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(unsigned))
	return b64.EncodeToString(h.Sum(nil))
}

// SignJWT signs with the secret from the environment.
func SignJWT(c Claims) (string, error) {
	s, err := envSigner()
	if err != nil {
		return "", err
	}
	return s.Sign(c)
}

// VerifyJWT verifies with the secret from the environment.
func VerifyJWT(token string) (Claims, error) {
	s, err := envSigner()
	if err != nil {
		return Claims{}, err
	}
	return s.Verify(token)
}

// envSigner reads JWT_SECRET on every call. Dev and test fall back to a
// fixed secret.
func envSigner() (*Signer, error) {
	if secret := strings.TrimSpace(os.Getenv("JWT_SECRET")); secret != "" {
		return NewSigner([]byte(secret)), nil
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "production", "prod", "staging":
		return nil, errNoSecret
	}
	return NewSigner(devSigningSecret), nil
}
