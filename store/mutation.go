package store

import (
	"context"
	"sync"
)

type MutationState int

const (
	Pending MutationState = iota
	Committed
	// Failed means the backend rejected the write. The in-memory change is
	// kept, so the local copy is now ahead of what is stored.
	Failed
)

func (s MutationState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Mutation tracks the persistence half of a store mutator. The in-memory half
// has already been applied by the time the caller receives it.
type Mutation struct {
	Op  string
	Key string

	mu    sync.Mutex
	state MutationState
	err   error
	done  chan struct{}
}

func newMutation(op, key string) *Mutation {
	return &Mutation{Op: op, Key: key, done: make(chan struct{})}
}

func (m *Mutation) finish(err error) {
	m.mu.Lock()
	if err != nil {
		m.state, m.err = Failed, err
	} else {
		m.state = Committed
	}
	m.mu.Unlock()
	close(m.done)
}

func (m *Mutation) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mutation) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mutation) Done() <-chan struct{} {
	return m.done
}

// Wait blocks until the backend answered or ctx ends. Giving up on the wait
// does not cancel the write.
func (m *Mutation) Wait(ctx context.Context) error {
	select {
	case <-m.done:
		return m.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
