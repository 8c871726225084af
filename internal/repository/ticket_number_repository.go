package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

// TicketNumberGenerator issues the next full ticket identifier for a
// prefix. Implementations must guarantee uniqueness across restarts and
// concurrent callers.
type TicketNumberGenerator interface {
	Next(ctx context.Context, prefix domain.TicketType) (string, error)
}

type ticketNumberRepository struct {
	pool *pgxpool.Pool
}

// NewTicketNumberRepository returns a generator backed by the
// ticket_sequences table. The row update serializes concurrent callers.
func NewTicketNumberRepository(pool *pgxpool.Pool) TicketNumberGenerator {
	return &ticketNumberRepository{pool: pool}
}

func (r *ticketNumberRepository) Next(ctx context.Context, prefix domain.TicketType) (string, error) {
	if !prefix.Valid() {
		return "", domain.ErrInvalidPrefix
	}
	const query = `
        UPDATE ticket_sequences SET value = value + 1
        WHERE prefix=$1
        RETURNING value`
	var value int64
	if err := r.pool.QueryRow(ctx, query, prefix).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("sequence for prefix %s not seeded", prefix)
		}
		return "", err
	}
	return fmt.Sprintf("%s%010d", prefix, value), nil
}
