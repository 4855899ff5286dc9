package repository

import (
	"context"

	"taxportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxRepository defines the interface for data access of TaxRecord entities.
type TaxRepository interface {
	Create(ctx context.Context, record *model.TaxRecord) error
	GetByID(ctx context.Context, id string) (*model.TaxRecord, error)
	List(ctx context.Context, userID *uuid.UUID, status string, page, limit int) ([]model.TaxRecord, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TaxRecord, error)
	Update(ctx context.Context, record *model.TaxRecord) error
}

type taxRepository struct {
	db *gorm.DB
}

// NewTaxRepository returns a new instance of TaxRepository
func NewTaxRepository(db *gorm.DB) TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(ctx context.Context, record *model.TaxRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *taxRepository) GetByID(ctx context.Context, id string) (*model.TaxRecord, error) {
	var record model.TaxRecord
	if err := GetDB(ctx, r.db).Preload("Asset").First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *taxRepository) List(ctx context.Context, userID *uuid.UUID, status string, page, limit int) ([]model.TaxRecord, int64, error) {
	var records []model.TaxRecord
	var total int64

	db := GetDB(ctx, r.db).Model(&model.TaxRecord{})
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Asset").Order("created_at desc").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListByUser returns the full unpaginated tax record snapshot of one user in
// stable creation order, for reconciliation.
func (r *taxRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TaxRecord, error) {
	var records []model.TaxRecord
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *taxRepository) Update(ctx context.Context, record *model.TaxRecord) error {
	return GetDB(ctx, r.db).Save(record).Error
}
