package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	DB *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(ctx context.Context, m *Message) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO contact_messages (id, locale, name, email, body, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, m.ID, m.Locale, m.Name, m.Email, m.Body, m.IP, m.UserAgent).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// CountByLocale returns how many messages were received per locale.
func (r *Repository) CountByLocale(ctx context.Context) (map[string]int64, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT locale, COUNT(*)
		FROM contact_messages
		GROUP BY locale
	`)
	if err != nil {
		return nil, fmt.Errorf("count contact messages: %w", err)
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var locale string
		var n int64
		if err := rows.Scan(&locale, &n); err != nil {
			return nil, fmt.Errorf("scan contact count: %w", err)
		}
		out[locale] = n
	}
	return out, rows.Err()
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.DB.Ping(ctx)
}
