package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	domainRepo "github.com/marea-picante/pos-terminal/internal/domain/repository"
	"gorm.io/gorm"
)

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *gorm.DB) domainRepo.DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *entity.Draft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *draftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Draft, error) {
	var draft entity.Draft
	err := r.db.WithContext(ctx).
		Preload("Tables").Preload("Items").
		First(&draft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &draft, err
}

// Save rewrites the draft together with its child rows. Tables and items are
// replaced wholesale; merging row by row is not worth it at draft sizes.
func (r *draftRepository) Save(ctx context.Context, draft *entity.Draft) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ?", draft.ID).Delete(&entity.DraftTable{}).Error; err != nil {
			return err
		}
		if err := tx.Where("draft_id = ?", draft.ID).Delete(&entity.DraftItem{}).Error; err != nil {
			return err
		}

		for i := range draft.Tables {
			draft.Tables[i].ID = 0
			draft.Tables[i].DraftID = draft.ID
		}
		for i := range draft.Items {
			draft.Items[i].ID = 0
			draft.Items[i].DraftID = draft.ID
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(draft).Error
	})
}

func (r *draftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ?", id).Delete(&entity.DraftTable{}).Error; err != nil {
			return err
		}
		if err := tx.Where("draft_id = ?", id).Delete(&entity.DraftItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Draft{}, "id = ?", id).Error
	})
}
