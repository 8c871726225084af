package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

// InteractionRepository records every handled message append-only.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	ListRecent(ctx context.Context, limit, offset int) ([]domain.Interaction, error)
}

type interactionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository instantiates repository.
func NewInteractionRepository(pool *pgxpool.Pool) InteractionRepository {
	return &interactionRepository{pool: pool}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO interactions (id, message, category, handler, response, ticket_id, success)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		interaction.ID,
		interaction.Message,
		interaction.Category,
		interaction.Handler,
		interaction.Response,
		interaction.TicketID,
		interaction.Success,
	).Scan(&interaction.CreatedAt)
}

func (r *interactionRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.Interaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, message, category, handler, response, ticket_id, success, created_at
        FROM interactions
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Interaction
	for rows.Next() {
		var entry domain.Interaction
		if err := rows.Scan(
			&entry.ID,
			&entry.Message,
			&entry.Category,
			&entry.Handler,
			&entry.Response,
			&entry.TicketID,
			&entry.Success,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
