package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcode-github/imobiliaria/backend/storage"
)

// SessionKey holds the admin session flag, separate from any snapshot.
const SessionKey = "prime_auth"

// SessionFlag is where the authenticated flag survives restarts.
type SessionFlag interface {
	Authenticated(ctx context.Context) (bool, error)
	SetAuthenticated(ctx context.Context, val bool) error
}

type kvSessionFlag struct {
	kv storage.KV
}

func NewSessionFlag(kv storage.KV) SessionFlag {
	return &kvSessionFlag{kv: kv}
}

func (f *kvSessionFlag) Authenticated(ctx context.Context) (bool, error) {
	b, err := f.kv.Get(ctx, SessionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session flag: %w", err)
	}
	return string(b) == "true", nil
}

// SetAuthenticated writes "true" on login and removes the key on logout.
func (f *kvSessionFlag) SetAuthenticated(ctx context.Context, val bool) error {
	if !val {
		return f.kv.Delete(ctx, SessionKey)
	}
	return f.kv.Set(ctx, SessionKey, []byte("true"))
}
