package repository

import (
	"context"

	"taxportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetRepository defines the interface for data access of Asset entities.
// userID filters are nil for admin-wide queries.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	GetByID(ctx context.Context, id string) (*model.Asset, error)
	List(ctx context.Context, userID *uuid.UUID, page, limit int) ([]model.Asset, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Asset, error)
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id string) error
}

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository returns a new instance of AssetRepository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	return GetDB(ctx, r.db).Create(asset).Error
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, userID *uuid.UUID, page, limit int) ([]model.Asset, int64, error) {
	var assets []model.Asset
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Asset{})
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

// ListByUser returns the full unpaginated asset snapshot of one user, in
// creation order. Reconciliation works on whole snapshots.
func (r *assetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Asset, error) {
	var assets []model.Asset
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at asc").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) error {
	return GetDB(ctx, r.db).Save(asset).Error
}

func (r *assetRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Asset{}).Error
}
