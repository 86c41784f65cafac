package contact

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const insertMessageQuery = `
	INSERT INTO contact_messages (ticket_id, name, mobile, message)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m Message) (Message, error) {
	err := r.db.QueryRowContext(ctx, insertMessageQuery, m.TicketID, m.Name, m.Mobile, m.Message).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("insert contact message: %w", err)
	}
	return m, nil
}
