package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Store holds session state between operations.
type Store interface {
	// Load returns ErrNotFound for an unknown id.
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, st *State) error
}

// Manager serialises operations per session and persists the result of
// every successful one.
type Manager struct {
	store Store
	svc   *Service

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, svc *Service) *Manager {
	return &Manager{store: store, svc: svc, locks: make(map[string]*sessionLock)}
}

// Create starts an empty session and returns its id.
func (m *Manager) Create(ctx context.Context) (string, error) {
	st := newState(uuid.NewString())
	if err := m.store.Save(ctx, st); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return st.ID, nil
}

func (m *Manager) Summary(ctx context.Context, id string) (Summary, error) {
	var sum Summary
	err := m.view(ctx, id, func(st *State) {
		sum = st.Summary()
	})
	return sum, err
}

// Figure returns the rendered chart, or nil when none has been drawn.
func (m *Manager) Figure(ctx context.Context, id string) ([]byte, error) {
	var fig []byte
	err := m.view(ctx, id, func(st *State) {
		fig = append([]byte(nil), st.Figure...)
	})
	return fig, err
}

func (m *Manager) SubmitLog(ctx context.Context, id string, r io.Reader) ([]string, error) {
	var speakers []string
	err := m.update(ctx, id, func(st *State) error {
		var err error
		speakers, err = m.svc.SubmitLog(st, r)
		return err
	})
	return speakers, err
}

func (m *Manager) SelectSpeakers(ctx context.Context, id string, names []string) error {
	return m.update(ctx, id, func(st *State) error {
		return m.svc.SelectSpeakers(st, names)
	})
}

func (m *Manager) RunAnalysis(ctx context.Context, id, credential string) (*AnalysisContext, error) {
	var ac *AnalysisContext
	err := m.update(ctx, id, func(st *State) error {
		var err error
		ac, err = m.svc.RunAnalysis(ctx, st, credential)
		return err
	})
	return ac, err
}

func (m *Manager) SubmitChatTurn(ctx context.Context, id, text, credential string) (*TurnResult, error) {
	var res *TurnResult
	err := m.update(ctx, id, func(st *State) error {
		var err error
		res, err = m.svc.SubmitChatTurn(ctx, st, text, credential)
		return err
	})
	return res, err
}

func (m *Manager) Reset(ctx context.Context, id string) error {
	return m.update(ctx, id, func(st *State) error {
		m.svc.Reset(st)
		return nil
	})
}

func (m *Manager) update(ctx context.Context, id string, fn func(*State) error) error {
	unlock := m.lock(id)
	defer unlock()

	st, err := m.store.Load(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	if err := m.store.Save(ctx, st); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (m *Manager) view(ctx context.Context, id string, fn func(*State)) error {
	unlock := m.lock(id)
	defer unlock()

	st, err := m.store.Load(ctx, id)
	if err != nil {
		return err
	}
	fn(st)
	return nil
}

// lock takes the per-session mutex. Entries are dropped once nobody holds
// or waits on them.
func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
