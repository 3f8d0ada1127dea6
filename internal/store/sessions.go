package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/typecast/internal/session"
)

// Load fetches a session's state by id.
func (s *Store) Load(ctx context.Context, id string) (*session.State, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT state FROM typecast_sessions WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var st session.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &st, nil
}

// Save upserts the full state of a session.
func (s *Store) Save(ctx context.Context, st *session.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO typecast_sessions (id, state, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (id)
		DO UPDATE SET
			state = $2,
			updated_at = now()`,
		st.ID, raw,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM typecast_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
