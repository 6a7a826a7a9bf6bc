package ports

import "context"

// SessionStore holds the bearer token of one client context. There is at most
// one token per client context; Set replaces it.
type SessionStore interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
}

// SessionBackend is the durable key/value storage behind session stores.
type SessionBackend interface {
	Load(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}
