package session

import (
	"context"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"shopledger/internal/app/model"
	"time"
)

var ErrInvalidToken = errors.New("invalid token")

type Creator interface {
	// Create a session for the account and return its bearer token
	Create(ctx context.Context, a *model.Account) (string, error)
}

type Reader interface {
	// Read the account behind a bearer token
	Read(ctx context.Context, token string) (*model.Account, error)
}

type Manager interface {
	Creator
	Reader
}

type Claims struct {
	jwt.StandardClaims
	Role model.Role `json:"role,omitempty"`
}

// Record is the server-side half of a session
type Record struct {
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
	AccountID uuid.UUID `json:"account_id"`
}

type config struct {
	issuer        string
	secretKey     []byte
	tokenLifetime time.Duration
	newID         func() string
	now           func() time.Time
}

func newConfig(secretKey string, opts []Option) config {
	c := config{
		issuer:        "shopledger",
		secretKey:     []byte(secretKey),
		tokenLifetime: time.Hour,
		newID: func() string {
			return uuid.New().String()
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

type Option func(c *config)

func WithIssuer(issuer string) Option {
	return func(c *config) {
		c.issuer = issuer
	}
}

func WithTokenLifetime(d time.Duration) Option {
	return func(c *config) {
		c.tokenLifetime = d
	}
}

// issue signs a token for a new session and returns it with the session id and record
func (c config) issue(a *model.Account) (string, string, Record, error) {
	id := c.newID()
	now := c.now()
	rec := Record{
		StartedAt: now,
		ExpiresAt: now.Add(c.tokenLifetime),
		AccountID: a.ID,
	}

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        id,
			Subject:   a.ID.String(),
			NotBefore: now.Unix(),
			ExpiresAt: rec.ExpiresAt.Unix(),
			Issuer:    c.issuer,
		},
		Role: a.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	strToken, err := token.SignedString(c.secretKey)
	if err != nil {
		return "", "", Record{}, fmt.Errorf("jwt encode: %w", err)
	}

	return strToken, id, rec, nil
}

// parse validates the token signature and returns its claims
func (c config) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
