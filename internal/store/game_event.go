package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendGameEvent(ctx context.Context, data GameEventData) error {
	return r.appendEvent(ctx, gameEventsTable.Name,
		[]string{"score", "submissions", "duration_secs"},
		[]any{data.Score, data.Submissions, data.DurationSecs})
}

// QueryGameEvents returns finished rounds newest first.
func (r *eventRepo) QueryGameEvents(ctx context.Context, opts QueryOpts) ([]GameEventRecord, error) {
	sel := builder().Select("sequence", "timestamp", "score", "submissions", "duration_secs").
		From(entsql.Table(gameEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	sel = applyOpts(sel, opts)

	var out []GameEventRecord
	err := queryRows(ctx, r.db, sel, func(rows *sql.Rows) error {
		var (
			g  GameEventRecord
			ts int64
		)
		if err := rows.Scan(&g.Sequence, &ts, &g.Score, &g.Submissions, &g.DurationSecs); err != nil {
			return err
		}
		g.Timestamp = fromMillis(ts)
		out = append(out, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query game events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) BestGameScore(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.As(entsql.Max("score"), "best")).
		From(entsql.Table(gameEventsTable.Name)).
		Query()

	var best sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&best); err != nil {
		return 0, fmt.Errorf("query best game score: %w", err)
	}
	return int(best.Int64), nil
}
