package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReadSQL loads a table from the result set of a query. Column order follows
// the select list.
func ReadSQL(ctx context.Context, db *pgxpool.Pool, query string) (*Table, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to execute query: %w", err)
	}
	defer rows.Close()

	descriptions := rows.FieldDescriptions()
	columns := make([]string, len(descriptions))
	for i, d := range descriptions {
		columns[i] = d.Name
	}
	table := New(columns...)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("dataset: failed to scan row: %w", err)
		}
		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = values[i]
		}
		table.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dataset: error iterating rows: %w", err)
	}
	return table, nil
}

// EnsureTable creates the target table with one TEXT column per dataset
// column when it does not exist yet.
func EnsureTable(ctx context.Context, db *pgxpool.Pool, name string, t *Table) error {
	defs := make([]string, 0, len(t.Columns()))
	for _, column := range t.Columns() {
		defs = append(defs, pgx.Identifier{column}.Sanitize()+" TEXT")
	}
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", pgx.Identifier{name}.Sanitize(), strings.Join(defs, ", "))
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("dataset: failed to create table '%s': %w", name, err)
	}
	return nil
}

// WriteSQL bulk-inserts a table into the named Postgres table via CopyFrom.
// Cells are stringified so TEXT targets accept mixed-typed columns.
func WriteSQL(ctx context.Context, db *pgxpool.Pool, name string, t *Table) error {
	columns := t.Columns()
	_, err := db.CopyFrom(
		ctx,
		pgx.Identifier{name},
		columns,
		pgx.CopyFromSlice(t.Len(), func(i int) ([]any, error) {
			values := make([]any, len(columns))
			for j, column := range columns {
				v := t.Value(i, column)
				if v == nil {
					values[j] = nil
					continue
				}
				values[j] = formatCell(v)
			}
			return values, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("dataset: failed to copy rows into '%s': %w", name, err)
	}
	return nil
}
