package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/loader"
)

// GetUnit returns the unit with the given id, or ErrNotFound.
func (s *Store) GetUnit(ctx context.Context, id string) (Unit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, ns, file, kind, line, payload, ir_version
		FROM units
		WHERE id = ?
	`, id)
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Unit{}, fmt.Errorf("get unit %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Unit{}, fmt.Errorf("get unit %s: %w", id, err)
	}

	u.Names, err = s.unitNames(ctx, id)
	if err != nil {
		return Unit{}, err
	}
	return u, nil
}

// LoadUnit decodes the cached tree with the given id.
func (s *Store) LoadUnit(ctx context.Context, id string) (ir.Node, error) {
	u, err := s.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IRVersion != ir.IRVersion {
		return nil, fmt.Errorf("load unit %s: stored with IR version %s, want %s", id, u.IRVersion, ir.IRVersion)
	}
	n, err := loader.Load([]byte(u.Payload), loader.FormatJSON, id)
	if err != nil {
		return nil, fmt.Errorf("load unit %s: %w", id, err)
	}
	return n, nil
}

// ListUnits returns the units of namespace ns, or of every namespace when
// ns is empty. Results are ordered by seq ASC, id ASC COLLATE BINARY.
// Names are not populated.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListUnits(ctx context.Context, ns string) ([]Unit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, ns, file, kind, line, payload, ir_version
		FROM units
		WHERE ? = '' OR ns = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, ns, ns)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	units := []Unit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return units, nil
}

// FindByName returns the ids of units that introduce the target name,
// ordered by seq.
func (s *Store) FindByName(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id
		FROM unit_names n
		JOIN units u ON u.id = n.unit_id
		WHERE n.name = ?
		ORDER BY u.seq ASC, u.id COLLATE BINARY ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query unit names: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unit id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unit names: %w", err)
	}
	return ids, nil
}

func (s *Store) unitNames(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM unit_names WHERE unit_id = ? ORDER BY name COLLATE BINARY ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query unit names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan unit name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unit names: %w", err)
	}
	return names, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(row scanner) (Unit, error) {
	var (
		u    Unit
		line sql.NullInt64
	)
	if err := row.Scan(&u.ID, &u.Seq, &u.NS, &u.File, &u.Kind, &line, &u.Payload, &u.IRVersion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Unit{}, err
		}
		return Unit{}, fmt.Errorf("scan unit: %w", err)
	}
	if line.Valid {
		u.Line = int(line.Int64)
	}
	return u, nil
}
