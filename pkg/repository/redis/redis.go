package redis

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"github.com/redis/go-redis/v9"
)

// Redis serves the session store. Each user's profile is one hash.
type Redis struct {
	client  *redis.Client
	session *sessionRepository
}

type Option func(*Redis)

// WithKeyPrefix sets the prefix of every hash key
func WithKeyPrefix(prefix string) Option {
	return func(r *Redis) {
		r.session.keyPrefix = prefix
	}
}

// New connects to the Redis server at addr
func New(ctx context.Context, addr, password string, db int, opts ...Option) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to ping redis", goerr.V("addr", addr), goerr.V("db", db))
	}

	r := &Redis{
		client:  client,
		session: newSessionRepository(client),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Redis) Session() interfaces.SessionRepository {
	return r.session
}

func (r *Redis) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
