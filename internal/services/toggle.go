package services

import (
	"context"
	"errors"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/metrics"
)

const maxToggleAttempts = 3

var errToggleUnsettled = errors.New("record kept appearing and disappearing")

// toggleOps describes one toggle store keyed by a composite unique index.
type toggleOps[T any] struct {
	store  string
	find   func(ctx context.Context) (*T, error)
	id     func(*T) string
	remove func(ctx context.Context, id string) error
	build  func(ctx context.Context) (*T, error)
	create func(ctx context.Context, record *T) error
}

// runToggle deletes the record if present, otherwise builds and inserts one.
// created reports whether this call inserted the returned record.
//
// A Conflict on insert means a concurrent caller won the race; the toggle then
// converges on the winner's record instead of failing. A NotFound on delete
// means another caller removed it first, which is already the target state.
func runToggle[T any](ctx context.Context, m *metrics.Metrics, ops toggleOps[T]) (record *T, created bool, err error) {
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		existing, err := ops.find(ctx)
		if err == nil {
			switch err := ops.remove(ctx, ops.id(existing)); {
			case err == nil:
				m.Toggle(ops.store, metrics.OutcomeRemoved)
			case apperrors.IsNotFound(err):
				m.Toggle(ops.store, metrics.OutcomeRace)
			default:
				return nil, false, err
			}
			return nil, false, nil
		}
		if !apperrors.IsNotFound(err) {
			return nil, false, err
		}

		record, err := ops.build(ctx)
		if err != nil {
			return nil, false, err
		}
		err = ops.create(ctx, record)
		if err == nil {
			m.Toggle(ops.store, metrics.OutcomeCreated)
			return record, true, nil
		}
		if !apperrors.IsConflict(err) {
			return nil, false, err
		}

		m.Toggle(ops.store, metrics.OutcomeRace)
		winner, err := ops.find(ctx)
		if err == nil {
			return winner, false, nil
		}
		if !apperrors.IsNotFound(err) {
			return nil, false, err
		}
	}
	return nil, false, apperrors.Upstream(errToggleUnsettled, "%s toggle did not settle after %d attempts", ops.store, maxToggleAttempts)
}
