package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driven"
)

// resultArchive implements driven.ResultArchive.
type resultArchive struct {
	store *Store
}

var _ driven.ResultArchive = (*resultArchive)(nil)

// SaveDraws records draws in one transaction. A draw already archived for the
// same source, sub-game and date is kept as first seen.
func (a *resultArchive) SaveDraws(ctx context.Context, draws []domain.ArchivedDraw) error {
	if len(draws) == 0 {
		return nil
	}

	tx, err := a.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting archive transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO draw_results (source_id, subgame, draw_date, numbers, drawn_at, collected_at, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_id, subgame, draw_date) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing archive insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range draws {
		if d.SourceID == "" || d.DrawDate.IsZero() {
			return fmt.Errorf("%w: archived draw needs a source and a date", domain.ErrInvalidInput)
		}
		if _, err := stmt.ExecContext(ctx,
			d.SourceID, d.Subgame, d.DrawDate.String(), d.Numbers,
			formatNullableTime(d.DrawnAt), formatTime(d.CollectedAt), nullString(d.RunID),
		); err != nil {
			return fmt.Errorf("archiving %s/%s: %w", d.SourceID, d.Subgame, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive: %w", err)
	}
	return nil
}

// DrawsOn returns the archived draws for date, ordered by source then sub-game.
func (a *resultArchive) DrawsOn(ctx context.Context, date domain.Date) ([]domain.ArchivedDraw, error) {
	rows, err := a.store.db.QueryContext(ctx, `
		SELECT source_id, subgame, draw_date, numbers, drawn_at, collected_at, run_id
		FROM draw_results
		WHERE draw_date = ?
		ORDER BY source_id, subgame
	`, date.String())
	if err != nil {
		return nil, fmt.Errorf("querying archived draws: %w", err)
	}
	defer rows.Close()

	var draws []domain.ArchivedDraw //nolint:prealloc // size unknown from query
	for rows.Next() {
		var d domain.ArchivedDraw
		var drawDate, collectedAt string
		var drawnAt, runID sql.NullString
		if err := rows.Scan(&d.SourceID, &d.Subgame, &drawDate, &d.Numbers,
			&drawnAt, &collectedAt, &runID); err != nil {
			return nil, fmt.Errorf("scanning archived draw: %w", err)
		}
		if d.DrawDate, err = domain.ParseDate(drawDate); err != nil {
			return nil, fmt.Errorf("archived draw %s/%s: %w", d.SourceID, d.Subgame, err)
		}
		d.DrawnAt = parseNullableTime(drawnAt)
		d.CollectedAt = parseTime(collectedAt)
		d.RunID = runID.String
		draws = append(draws, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived draws: %w", err)
	}
	return draws, nil
}
