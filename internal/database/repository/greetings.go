package repository

import (
	"context"
	"database/sql"
)

// GreetingRepo handles greetings.
type GreetingRepo struct {
	db *sql.DB
}

func NewGreetingRepo(db *sql.DB) *GreetingRepo { return &GreetingRepo{db: db} }

func (r *GreetingRepo) Insert(ctx context.Context, g Greeting) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO greetings(id, name, message, created_at) VALUES (?, ?, ?, ?);
	`, g.ID, g.Name, g.Message, g.CreatedAt.UTC())
	return err
}

// Recent returns up to limit greetings, newest first.
func (r *GreetingRepo) Recent(ctx context.Context, limit int) ([]Greeting, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, message, created_at FROM greetings
	ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Greeting
	for rows.Next() {
		var g Greeting
		if err := rows.Scan(&g.ID, &g.Name, &g.Message, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GreetingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM greetings`).Scan(&n)
	return n, err
}
