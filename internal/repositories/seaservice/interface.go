package seaservice

import (
	"context"

	"github.com/dmitrijs2005/seabook/internal/models"
)

// Repository describes durable storage of Sea Service records.
type Repository interface {
	// Insert stores a new DRAFT record. A second draft is refused with
	// common.ErrDraftExists.
	Insert(ctx context.Context, rec *models.SeaServiceRecord) error

	// UpdateDraft overwrites payload and listing columns of a DRAFT record.
	// FINAL records are refused with common.ErrRecordFinal.
	UpdateDraft(ctx context.Context, rec *models.SeaServiceRecord) error

	// Finalize writes the record's payload and moves it from DRAFT to FINAL.
	Finalize(ctx context.Context, rec *models.SeaServiceRecord) error

	// DeleteDraft permanently removes a DRAFT record.
	DeleteDraft(ctx context.Context, id string) error

	// GetByID returns one record of any status.
	GetByID(ctx context.Context, id string) (*models.SeaServiceRecord, error)

	// GetActiveDraft returns the single DRAFT record or common.ErrNotFound.
	GetActiveDraft(ctx context.Context) (*models.SeaServiceRecord, error)

	// ListFinal returns FINAL records, most recent first.
	ListFinal(ctx context.Context) ([]models.SeaServiceRecord, error)
}
