// Package lockout counts failed admin logins and locks the account for a
// while once too many pile up inside the attempt window.
package lockout

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dcode-github/imobiliaria/backend/storage"
)

type Options struct {
	MaxAttempts  int
	Window       time.Duration
	LockDuration time.Duration
}

type record struct {
	Count       int       `json:"count"`
	WindowStart time.Time `json:"windowStart"`
	LockedUntil time.Time `json:"lockedUntil"`
}

// Attempts keeps one record per account in a key/value store. A nil
// *Attempts never locks.
type Attempts struct {
	kv   storage.KV
	opts Options
	now  func() time.Time
	mu   sync.Mutex
}

func New(kv storage.KV, opts Options) *Attempts {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.Window <= 0 {
		opts.Window = 15 * time.Minute
	}
	if opts.LockDuration <= 0 {
		opts.LockDuration = 15 * time.Minute
	}
	return &Attempts{kv: kv, opts: opts, now: time.Now}
}

func key(account string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(account))))
	return "login_attempts_" + hex.EncodeToString(sum[:8])
}

func (a *Attempts) load(ctx context.Context, account string) (record, error) {
	raw, err := a.kv.Get(ctx, key(account))
	if errors.Is(err, storage.ErrNotFound) {
		return record{}, nil
	}
	if err != nil {
		return record{}, fmt.Errorf("read login attempts: %w", err)
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return record{}, fmt.Errorf("decode login attempts: %w", err)
	}
	return rec, nil
}

// IsLocked reports whether the account is locked and until when.
func (a *Attempts) IsLocked(ctx context.Context, account string) (bool, time.Time, error) {
	if a == nil {
		return false, time.Time{}, nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, err := a.load(ctx, account)
	if err != nil {
		return false, time.Time{}, err
	}
	if a.now().Before(rec.LockedUntil) {
		return true, rec.LockedUntil, nil
	}
	return false, time.Time{}, nil
}

// Increment records a failed login. The count restarts once the window has
// passed; reaching the maximum sets the lock.
func (a *Attempts) Increment(ctx context.Context, account string) error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rec, err := a.load(ctx, account)
	if err != nil {
		return err
	}

	now := a.now()
	if rec.WindowStart.IsZero() || now.Sub(rec.WindowStart) > a.opts.Window || (!rec.LockedUntil.IsZero() && !now.Before(rec.LockedUntil)) {
		rec = record{WindowStart: now}
	}
	rec.Count++
	if rec.Count >= a.opts.MaxAttempts {
		rec.LockedUntil = now.Add(a.opts.LockDuration)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode login attempts: %w", err)
	}
	return a.kv.Set(ctx, key(account), raw)
}

// Reset clears the account after a successful login.
func (a *Attempts) Reset(ctx context.Context, account string) error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.kv.Delete(ctx, key(account))
}
