package repository

import (
	"context"

	"taxportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository defines data access for payment transactions.
// Transactions are append-only; there is deliberately no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	List(ctx context.Context, userID *uuid.UUID, page, limit int) ([]model.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository returns a new instance of TransactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *transactionRepository) List(ctx context.Context, userID *uuid.UUID, page, limit int) ([]model.Transaction, int64, error) {
	var txs []model.Transaction
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Transaction{})
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("TaxRecord").Order("created_at desc").Offset(offset).Limit(limit).Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}
