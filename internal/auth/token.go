package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

var ErrBadToken = errors.New("invalid token")

const (
	purposeSession = "session"
	purposeReset   = "password_reset"
)

type Claims struct {
	Role    string `json:"role"`
	Purpose string `json:"purpose"`

	// Fingerprint amarra o token de redefinição ao hash de senha vigente.
	Fingerprint string `json:"fp,omitempty"`

	jwt.RegisteredClaims
}

// UserID converte o subject para o id numérico.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrBadToken
	}
	return uint(id), nil
}

type Issuer struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
}

func NewIssuer(secret string, ttl, resetTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, resetTTL: resetTTL}
}

// Session gera o token de sessão guardado pelo frontend.
func (i *Issuer) Session(u *models.User) (string, error) {
	return i.sign(Claims{
		Role:    u.Role,
		Purpose: purposeSession,
	}, u.ID, i.ttl)
}

func (i *Issuer) ParseSession(raw string) (*Claims, error) {
	c, err := i.parse(raw)
	if err != nil {
		return nil, err
	}
	if c.Purpose != purposeSession {
		return nil, ErrBadToken
	}
	return c, nil
}

// Reset gera um token de redefinição de senha de uso único: deixa de valer
// assim que a senha muda.
func (i *Issuer) Reset(u *models.User) (string, error) {
	return i.sign(Claims{
		Purpose:     purposeReset,
		Fingerprint: Fingerprint(u.PasswordHash),
	}, u.ID, i.resetTTL)
}

func (i *Issuer) ParseReset(raw string) (*Claims, error) {
	c, err := i.parse(raw)
	if err != nil {
		return nil, err
	}
	if c.Purpose != purposeReset || c.Fingerprint == "" {
		return nil, ErrBadToken
	}
	return c, nil
}

func (i *Issuer) sign(c Claims, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
}

func (i *Issuer) parse(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, ErrBadToken
	}

	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}

func Fingerprint(passwordHash string) string {
	h := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(h[:8])
}
