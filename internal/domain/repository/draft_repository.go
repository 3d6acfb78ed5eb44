package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/marea-picante/pos-terminal/internal/domain/entity"
)

// DraftRepository persists in-progress drafts so a composition survives a
// terminal restart.
type DraftRepository interface {
	Create(ctx context.Context, draft *entity.Draft) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Draft, error)
	// Save replaces the draft and all of its child rows.
	Save(ctx context.Context, draft *entity.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
}
