package repository

import (
	"context"
	"errors"

	"shopbot/internal/domain/filter"
	"shopbot/internal/infra"
	"shopbot/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type FilterRepository struct {
	runner *db.TxRunner
}

func NewFilterRepository(runner *db.TxRunner) *FilterRepository {
	return &FilterRepository{runner: runner}
}

// Set upserts the value for (conversationID, name).
func (r *FilterRepository) Set(ctx context.Context, conversationID, name, value string) error {
	err := r.runner.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO filters (conversation_id, filter_name, filter_value)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (conversation_id, filter_name)
			 DO UPDATE SET filter_value = EXCLUDED.filter_value, updated_at = now()`,
			conversationID, name, value,
		)
		return err
	})
	if err != nil {
		return infra.WrapRepoErr("failed to set filter", err)
	}
	return nil
}

// Remove deletes the record. Removing an absent filter is a no-op; the
// boolean reports whether a record existed.
func (r *FilterRepository) Remove(ctx context.Context, conversationID, name string) (bool, error) {
	var removed bool
	err := r.runner.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM filters WHERE conversation_id = $1 AND filter_name = $2`,
			conversationID, name,
		)
		if err != nil {
			return err
		}
		removed = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to remove filter", err)
	}
	return removed, nil
}

func (r *FilterRepository) Find(ctx context.Context, conversationID, name string) (*filter.Filter, error) {
	var f filter.Filter
	err := r.runner.Pool().QueryRow(ctx,
		`SELECT filter_name, filter_value FROM filters
		 WHERE conversation_id = $1 AND filter_name = $2`,
		conversationID, name,
	).Scan(&f.Name, &f.Value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("filter not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to query filter", err)
	}
	return &f, nil
}

func (r *FilterRepository) List(ctx context.Context, conversationID string) ([]filter.Filter, error) {
	rows, err := r.runner.Pool().Query(ctx,
		`SELECT filter_name, filter_value FROM filters
		 WHERE conversation_id = $1 ORDER BY filter_name LIMIT $2`,
		conversationID, maxQueryLimit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query filters", err)
	}
	defer rows.Close()

	var filters []filter.Filter
	for rows.Next() {
		var f filter.Filter
		if err := rows.Scan(&f.Name, &f.Value); err != nil {
			return nil, infra.WrapRepoErr("failed to scan filter", err)
		}
		filters = append(filters, f)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read filters", err)
	}
	return filters, nil
}
