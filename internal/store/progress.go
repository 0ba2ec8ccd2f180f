package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// progressRepo implements ProgressRepo as an upserted key-value table.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().Select("value").
		From(entsql.Table(progressTable.Name)).
		Where(entsql.EQ("name", key)).
		Query()

	var v string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get progress %q: %w", key, err)
	}
	return v, true, nil
}

func (r *progressRepo) Set(ctx context.Context, key, value string) error {
	ins := builder().Insert(progressTable.Name).
		Columns("name", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := execQuery(ctx, r.db, ins); err != nil {
		return fmt.Errorf("set progress %q: %w", key, err)
	}
	return nil
}

func (r *progressRepo) All(ctx context.Context) (map[string]string, error) {
	sel := builder().Select("name", "value").
		From(entsql.Table(progressTable.Name)).
		OrderBy("name")

	out := make(map[string]string)
	err := queryRows(ctx, r.db, sel, func(rows *sql.Rows) error {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		out[k] = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return out, nil
}

func (r *progressRepo) Clear(ctx context.Context) error {
	if _, err := execQuery(ctx, r.db, builder().Delete(progressTable.Name)); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
