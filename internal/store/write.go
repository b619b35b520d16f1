package store

import (
	"context"
	"fmt"

	"github.com/roach88/lispir/internal/ir"
)

// PutUnit caches the unit rooted at n.
//
// The unit is keyed by ir.NodeID(n). Writing a tree that is already cached
// is a no-op that returns the stored record and inserted=false; the clock
// only advances on insert.
func (s *Store) PutUnit(ctx context.Context, n ir.Node) (u Unit, inserted bool, err error) {
	id, err := ir.NodeID(n)
	if err != nil {
		return Unit{}, false, fmt.Errorf("put unit: %w", err)
	}
	payload, err := ir.MarshalCanonical(ir.ToMap(n))
	if err != nil {
		return Unit{}, false, fmt.Errorf("put unit: %w", err)
	}

	u = unitOf(n, string(payload))
	u.ID = id
	u.Names = Names(n, nil)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Unit{}, false, fmt.Errorf("put unit: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM units WHERE id = ?)`, u.ID).Scan(&exists); err != nil {
		return Unit{}, false, fmt.Errorf("put unit: %w", err)
	}
	if exists {
		if err := tx.Commit(); err != nil {
			return Unit{}, false, fmt.Errorf("put unit: commit: %w", err)
		}
		s.logger.Debug("unit already cached", "id", u.ID, "kind", u.Kind)
		existing, err := s.GetUnit(ctx, u.ID)
		return existing, false, err
	}

	var line any
	if u.Line > 0 {
		line = u.Line
	}
	u.Seq = s.clock.Next()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO units
		(id, seq, ns, file, kind, line, payload, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		u.ID,
		u.Seq,
		u.NS,
		u.File,
		u.Kind,
		line,
		u.Payload,
		u.IRVersion,
	)
	if err != nil {
		return Unit{}, false, fmt.Errorf("put unit: %w", err)
	}

	for _, name := range u.Names {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO unit_names (unit_id, name) VALUES (?, ?)
			ON CONFLICT DO NOTHING
		`, u.ID, name); err != nil {
			return Unit{}, false, fmt.Errorf("put unit: name %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Unit{}, false, fmt.Errorf("put unit: commit: %w", err)
	}

	s.logger.Info("unit cached",
		"id", u.ID,
		"seq", u.Seq,
		"ns", u.NS,
		"kind", u.Kind,
	)
	return u, true, nil
}

// DeleteFile drops every unit compiled from file and returns how many were
// removed.
func (s *Store) DeleteFile(ctx context.Context, file string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM units WHERE file = ?`, file)
	if err != nil {
		return 0, fmt.Errorf("delete file units: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete file units: rows affected: %w", err)
	}
	s.logger.Info("file units dropped", "file", file, "count", n)
	return n, nil
}
