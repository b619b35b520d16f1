package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/lispir/internal/ir"
	"github.com/roach88/lispir/internal/loader"
	"github.com/roach88/lispir/internal/store"
	"github.com/roach88/lispir/internal/testutil"
)

// Harness is the scenario execution engine.
type Harness struct {
	store  *store.Store
	clock  *testutil.UnitClock
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database for isolation, with
// a deterministic clock so cached seq values are reproducible.
//
// Execution flow:
// 1. Load the tree file
// 2. Repair locations with the scenario's fallback
// 3. Validate the repaired tree
// 4. Cache the tree twice (the second put must be a no-op) and read it back
// 5. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with a logger for harness and store activity.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	clock := testutil.NewUnitClock()
	st, err := store.Open(":memory:", store.WithClock(clock), store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{store: st, clock: clock, logger: logger}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	tree, err := loader.LoadFile(scenario.Tree)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}

	result := NewResult()
	result.Tree = tree

	var fallback *ir.Span
	if scenario.Fallback != "" {
		span, err := ir.ParseSpan(scenario.Fallback)
		if err != nil {
			return nil, fmt.Errorf("invalid fallback: %w", err)
		}
		fallback = &span
	}

	fixed, err := ir.FixMissingLocations(tree, fallback)
	if err != nil {
		result.FixError = err.Error()
		h.logger.Info("location repair failed", "scenario", scenario.Name, "error", err)
	} else {
		result.Tree = fixed
	}

	result.Diagnostics = append(result.Diagnostics, ir.Validate(result.Tree)...)

	if err := h.cache(ctx, result); err != nil {
		return nil, err
	}

	h.logger.Info("scenario executed",
		"scenario", scenario.Name,
		"unit_id", result.UnitID,
		"diagnostics", len(result.Diagnostics),
	)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// cache stores the tree and checks that it reads back unchanged.
func (h *Harness) cache(ctx context.Context, result *Result) error {
	unit, _, err := h.store.PutUnit(ctx, result.Tree)
	if err != nil {
		return fmt.Errorf("failed to cache tree: %w", err)
	}
	result.UnitID = unit.ID
	result.Seq = unit.Seq

	_, inserted, err := h.store.PutUnit(ctx, result.Tree)
	if err != nil {
		return fmt.Errorf("failed to re-cache tree: %w", err)
	}
	if inserted || len(h.clock.Issued()) != 1 {
		result.AddError(fmt.Sprintf("re-caching the tree inserted a new unit (seqs issued: %v)", h.clock.Issued()))
	}

	back, err := h.store.LoadUnit(ctx, unit.ID)
	if err != nil {
		return fmt.Errorf("failed to read cached tree: %w", err)
	}
	id, err := ir.NodeID(back)
	if err != nil {
		return fmt.Errorf("failed to hash cached tree: %w", err)
	}
	if id != unit.ID {
		result.AddError(fmt.Sprintf("cached tree hashes to %s, want %s", id, unit.ID))
	}
	return nil
}
