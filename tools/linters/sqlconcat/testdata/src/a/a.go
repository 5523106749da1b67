package a

import (
	"context"
	"fmt"
	"strconv"
)

// Test cases for non-constant SQL detection

type pool struct{}

func (pool) Exec(ctx context.Context, sql string, args ...any) error     { return nil }
func (pool) Query(ctx context.Context, sql string, args ...any) error    { return nil }
func (pool) QueryRow(ctx context.Context, sql string, args ...any) error { return nil }

type db struct{}

func (db) ExecContext(ctx context.Context, query string, args ...any) error { return nil }
func (db) Exec(query string, args ...any) error                            { return nil }
func (db) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return nil
}
func (db) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return nil
}

type cache struct{}

// Get has no SQL argument; string keys must not be reported.
func (cache) Get(key string) string { return key }

const deleteTodoSQL = `DELETE FROM todos WHERE id = $1`

const table = "todos"

func good(ctx context.Context, p pool, d db, id int64) {
	_ = p.Exec(ctx, deleteTodoSQL, id)
	_ = p.Query(ctx, `SELECT id, title, completed FROM todos ORDER BY id`)
	_ = p.QueryRow(ctx, "SELECT id FROM "+table+" WHERE id = $1", id)
	_ = d.ExecContext(ctx, deleteTodoSQL, id)
	_ = d.Exec(deleteTodoSQL, id)

	var dest []int64
	_ = d.SelectContext(ctx, &dest, `SELECT id FROM todos`)
	_ = d.GetContext(ctx, &dest, `SELECT id FROM todos WHERE id = ?`, id)
}

func bad(ctx context.Context, p pool, d db, id int64) {
	_ = p.Exec(ctx, "DELETE FROM todos WHERE id = "+strconv.FormatInt(id, 10)) // want "SQL passed to Exec must be a constant; bind values as arguments"

	query := fmt.Sprintf("SELECT * FROM %s", table)
	_ = p.Query(ctx, query) // want "SQL passed to Query must be a constant; bind values as arguments"

	_ = d.ExecContext(ctx, fmt.Sprintf("DELETE FROM todos WHERE id = %d", id)) // want "SQL passed to ExecContext must be a constant; bind values as arguments"
	_ = d.Exec(query)                                                           // want "SQL passed to Exec must be a constant; bind values as arguments"

	var dest []int64
	_ = d.SelectContext(ctx, &dest, query) // want "SQL passed to SelectContext must be a constant; bind values as arguments"
}

func ignored(ctx context.Context, p pool, c cache, query string) {
	_ = c.Get(query)

	//nolint:sqlconcat
	_ = p.Exec(ctx, query)

	_ = p.Exec(ctx, query) //nolint
}
