package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-redis/redis/v8"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
)

// session.Manager interface implementation
var _ Manager = (*Redis)(nil)

// Redis keeps session records in redis so every instance of the server sees them.
// Records expire with the token.
type Redis struct {
	cfg      config
	client   redis.Cmdable
	accounts storage.AccountRepository
}

func (svc *Redis) LoggerComponent() string {
	return "Session.Redis"
}

func NewRedis(secretKey string, client redis.Cmdable, accounts storage.AccountRepository, opts ...Option) *Redis {
	return &Redis{
		cfg:      newConfig(secretKey, opts),
		client:   client,
		accounts: accounts,
	}
}

func redisKey(id string) string {
	return "session:" + id
}

// Create method of session.Creator implementation
func (svc *Redis) Create(ctx context.Context, a *model.Account) (string, error) {
	l := logger.Get(ctx, svc)
	l.Debug().Str("account_id", a.ID.String()).Msg("Create")

	token, id, rec, err := svc.cfg.issue(a)
	if err != nil {
		l.Error().Err(err).Send()
		return "", err
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("json encode: %w", err)
	}

	if err := svc.client.Set(ctx, redisKey(id), string(raw), svc.cfg.tokenLifetime).Err(); err != nil {
		l.Error().Err(err).Msg("Session save failed")
		return "", fmt.Errorf("redis set: %w", err)
	}

	return token, nil
}

// Read method of session.Reader implementation
func (svc *Redis) Read(ctx context.Context, tokenString string) (*model.Account, error) {
	l := logger.Get(ctx, svc)

	c, err := svc.cfg.parse(tokenString)
	if err != nil {
		l.Debug().Err(err).Msg("Token parse failed")
		return nil, ErrInvalidToken
	}

	raw, err := svc.client.Get(ctx, redisKey(c.Id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			l.Debug().Str("session_id", c.Id).Msg("Session not found")
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	if rec.ExpiresAt.Before(svc.cfg.now()) {
		return nil, ErrInvalidToken
	}

	a, err := svc.accounts.Read(ctx, rec.AccountID)
	if err != nil {
		l.Debug().Err(err).Send()
		return nil, ErrInvalidToken
	}

	return a, nil
}
