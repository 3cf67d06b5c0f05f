// Package snapshot persists the whole AppState as one JSON document. The
// format version is part of the key, so a format change starts from the seed
// data instead of decoding an incompatible document.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/storage"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

const Key = "imobiliaria_maceio_v5_state"

type Store struct {
	kv  storage.KV
	key string
	now func() time.Time
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv, key: Key, now: time.Now}
}

// Load returns the stored snapshot, or the seed data on first run.
func (s *Store) Load(ctx context.Context) (models.AppState, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		utils.Logger.WithField("key", s.key).Info("No snapshot found, seeding defaults")
		return models.SeedState(s.now()), nil
	}
	if err != nil {
		return models.AppState{}, fmt.Errorf("read snapshot: %w", err)
	}

	var st models.AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		return models.AppState{}, fmt.Errorf("decode snapshot %s: %w", s.key, err)
	}
	return st, nil
}

// Save writes the whole aggregate. The session flag lives in its own key and
// is left out.
func (s *Store) Save(ctx context.Context, st models.AppState) error {
	st.IsAuthenticated = false
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
