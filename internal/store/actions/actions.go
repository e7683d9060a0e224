package actions

import (
	"context"
	"time"

	"go.uber.org/zap"

	"staysboard/internal/store"
)

// Action is one audited write against a listing: a created block or a
// house-rules update. Search traffic is not audited.
type Action struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	ListingID string    `json:"listing_id"`
	Actor     string    `json:"actor"`
	Detail    []byte    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	KindBlockCreated = "block_created"
	KindRulesUpdated = "rules_updated"
)

type ActionsRepository struct {
	db  *store.DB
	log *zap.Logger
}

func NewActionsRepository(db *store.DB, log *zap.Logger) *ActionsRepository {
	return &ActionsRepository{db: db, log: log}
}

func (r *ActionsRepository) Record(ctx context.Context, a *Action) (*Action, error) {
	query := `
		INSERT INTO actions (kind, listing_id, actor, detail)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.Pool.QueryRow(ctx, query, a.Kind, a.ListingID, a.Actor, a.Detail).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (r *ActionsRepository) ListByListing(ctx context.Context, listingID string, limit, offset int) ([]*Action, error) {
	query := `
		SELECT id, kind, listing_id, actor, detail, created_at
		FROM actions
		WHERE listing_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Pool.Query(ctx, query, listingID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Action
	for rows.Next() {
		a := &Action{}
		if err := rows.Scan(&a.ID, &a.Kind, &a.ListingID, &a.Actor, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
