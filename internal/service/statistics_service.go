package service

import (
	"context"
	"fmt"

	"taxportal/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CategoryValue struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Value    string `json:"value"`
}

type SummaryResponse struct {
	TotalAssets     int64           `json:"total_assets"`
	TotalAssetValue string          `json:"total_asset_value"`
	ByCategory      []CategoryValue `json:"by_category"`
	UnpaidBills     int64           `json:"unpaid_bills"`
	UnpaidAmount    string          `json:"unpaid_amount"`
	PaidBills       int64           `json:"paid_bills"`
	PaidAmount      string          `json:"paid_amount"`
	Transactions    int64           `json:"transactions"`
}

// StatisticsService aggregates dashboard numbers. Admins see the whole
// region; taxpayers see their own slice.
type StatisticsService interface {
	GetSummary(ctx context.Context, userID *uuid.UUID) (*SummaryResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

type countSum struct {
	Count int64
	Total decimal.Decimal
}

type categoryRow struct {
	Category string
	Count    int64
	Total    decimal.Decimal
}

func (s *statisticsService) GetSummary(ctx context.Context, userID *uuid.UUID) (*SummaryResponse, error) {
	scoped := func(q *gorm.DB) *gorm.DB {
		if userID != nil {
			return q.Where("user_id = ?", *userID)
		}
		return q
	}

	var assets countSum
	if err := scoped(s.db.WithContext(ctx).Model(&model.Asset{})).
		Select("COUNT(*) AS count, COALESCE(SUM(value), 0) AS total").
		Scan(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate assets: %w", err)
	}

	var byCategory []categoryRow
	if err := scoped(s.db.WithContext(ctx).Model(&model.Asset{})).
		Select("category, COUNT(*) AS count, COALESCE(SUM(value), 0) AS total").
		Group("category").
		Order("category").
		Scan(&byCategory).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate asset categories: %w", err)
	}

	var unpaid countSum
	if err := scoped(s.db.WithContext(ctx).Model(&model.TaxRecord{})).
		Where("status = ?", model.TaxStatusUnpaid).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Scan(&unpaid).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate unpaid bills: %w", err)
	}

	var paid countSum
	if err := scoped(s.db.WithContext(ctx).Model(&model.TaxRecord{})).
		Where("status = ?", model.TaxStatusPaid).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Scan(&paid).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate paid bills: %w", err)
	}

	var transactions int64
	if err := scoped(s.db.WithContext(ctx).Model(&model.Transaction{})).
		Count(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	res := &SummaryResponse{
		TotalAssets:     assets.Count,
		TotalAssetValue: assets.Total.StringFixed(2),
		ByCategory:      make([]CategoryValue, 0, len(byCategory)),
		UnpaidBills:     unpaid.Count,
		UnpaidAmount:    unpaid.Total.StringFixed(2),
		PaidBills:       paid.Count,
		PaidAmount:      paid.Total.StringFixed(2),
		Transactions:    transactions,
	}
	for _, row := range byCategory {
		res.ByCategory = append(res.ByCategory, CategoryValue{
			Category: row.Category,
			Count:    row.Count,
			Value:    row.Total.StringFixed(2),
		})
	}

	return res, nil
}
