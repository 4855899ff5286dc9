package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taxportal/internal/model"
	"taxportal/internal/repository"
	"taxportal/internal/taxation"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateAssetRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required,oneof=LANCAR SEMI_LANCAR TIDAK_LANCAR"`
	Subtype  string `json:"subtype" binding:"required"`
	Value    string `json:"value"` // Decimal string; missing or malformed means no value yet

	CertificateType     string `json:"certificate_type"`
	LandType            string `json:"land_type"`
	BuildingType        string `json:"building_type"`
	StructureMaterial   string `json:"structure_material"`
	VehicleType         string `json:"vehicle_type"`
	FuelType            string `json:"fuel_type"`
	EngineType          string `json:"engine_type"`
	InvestmentType      string `json:"investment_type"`
	InventoryCategory   string `json:"inventory_category"`
	ReceivableStatus    string `json:"receivable_status"`
	IntangibleAssetType string `json:"intangible_asset_type"`
	OwnershipStatus     string `json:"ownership_status"`

	Description string `json:"description"`
}

// UpdateAssetRequest replaces the asset wholesale (PUT semantics): the
// classification attributes are applied exactly as sent, so omitting one
// clears it.
type UpdateAssetRequest = CreateAssetRequest

type AssetResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Subtype  string `json:"subtype"`
	Value    string `json:"value"`

	CertificateType     string `json:"certificate_type,omitempty"`
	LandType            string `json:"land_type,omitempty"`
	BuildingType        string `json:"building_type,omitempty"`
	StructureMaterial   string `json:"structure_material,omitempty"`
	VehicleType         string `json:"vehicle_type,omitempty"`
	FuelType            string `json:"fuel_type,omitempty"`
	EngineType          string `json:"engine_type,omitempty"`
	InvestmentType      string `json:"investment_type,omitempty"`
	InventoryCategory   string `json:"inventory_category,omitempty"`
	ReceivableStatus    string `json:"receivable_status,omitempty"`
	IntangibleAssetType string `json:"intangible_asset_type,omitempty"`
	OwnershipStatus     string `json:"ownership_status,omitempty"`

	TaxAmount   string           `json:"tax_amount"`
	TaxRate     string           `json:"tax_rate"`
	Computation *taxation.Result `json:"computation,omitempty"` // Rate breakdown, detail view only
	Description string           `json:"description,omitempty"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

// --- Interface ---

type AssetService interface {
	CreateAsset(ctx context.Context, actorID string, req CreateAssetRequest) (*AssetResponse, error)
	GetAsset(ctx context.Context, id string, actorID string, actorRole string) (*AssetResponse, error)
	ListAssets(ctx context.Context, actorID string, actorRole string, page, limit int) ([]AssetResponse, int64, error)
	UpdateAsset(ctx context.Context, id string, actorID string, actorRole string, req UpdateAssetRequest) (*AssetResponse, error)
	DeleteAsset(ctx context.Context, id string, actorID string, actorRole string) error
}

type assetService struct {
	assets repository.AssetRepository
	taxes  TaxService
	audit  repository.AuditRepository
	txm    repository.TransactionManager
}

func NewAssetService(
	assets repository.AssetRepository,
	taxes TaxService,
	audit repository.AuditRepository,
	txm repository.TransactionManager,
) AssetService {
	return &assetService{assets: assets, taxes: taxes, audit: audit, txm: txm}
}

// --- Implementation ---

func applyClassification(asset *model.Asset, req CreateAssetRequest) error {
	category := taxation.CategoryOf(req.Subtype)
	if category == "" {
		return fmt.Errorf("unknown asset subtype '%s'", req.Subtype)
	}
	if category != req.Category {
		return fmt.Errorf("subtype '%s' belongs to category '%s', not '%s'", req.Subtype, category, req.Category)
	}

	asset.Name = req.Name
	asset.Category = req.Category
	asset.Subtype = req.Subtype
	asset.Value = parseValue(req.Value)
	asset.CertificateType = req.CertificateType
	asset.LandType = req.LandType
	asset.BuildingType = req.BuildingType
	asset.StructureMaterial = req.StructureMaterial
	asset.VehicleType = req.VehicleType
	asset.FuelType = req.FuelType
	asset.EngineType = req.EngineType
	asset.InvestmentType = req.InvestmentType
	asset.InventoryCategory = req.InventoryCategory
	asset.ReceivableStatus = req.ReceivableStatus
	asset.IntangibleAssetType = req.IntangibleAssetType
	asset.OwnershipStatus = req.OwnershipStatus
	asset.Description = req.Description

	// Refresh the cached computation alongside every write
	res := taxation.Compute(taxation.ClassificationOf(*asset))
	asset.TaxAmount = res.TaxAmount.Round(2)
	asset.TaxRate = res.TotalRate.Round(2)

	return nil
}

// CreateAsset persists the asset and issues its first tax bill in the same
// database transaction.
func (s *assetService) CreateAsset(ctx context.Context, actorID string, req CreateAssetRequest) (*AssetResponse, error) {
	ownerID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	asset := &model.Asset{UserID: ownerID}
	if err := applyClassification(asset, req); err != nil {
		return nil, err
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assets.Create(txCtx, asset); err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}
		s.writeAuditLog(txCtx, actorID, model.ActionCreateAsset, asset.ID.String(), asset.Name, req)
		_, err := s.taxes.ReconcileUser(txCtx, ownerID, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := toAssetResponse(*asset, false)
	return &res, nil
}

func (s *assetService) GetAsset(ctx context.Context, id string, actorID string, actorRole string) (*AssetResponse, error) {
	asset, err := s.loadOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	res := toAssetResponse(*asset, true)
	return &res, nil
}

func (s *assetService) ListAssets(ctx context.Context, actorID string, actorRole string, page, limit int) ([]AssetResponse, int64, error) {
	var filter *uuid.UUID
	if actorRole != model.RoleAdmin {
		ownerID, err := uuid.Parse(actorID)
		if err != nil {
			return nil, 0, errors.New("invalid user id")
		}
		filter = &ownerID
	}

	assets, total, err := s.assets.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch assets: %w", err)
	}

	res := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		res = append(res, toAssetResponse(a, false))
	}

	return res, total, nil
}

// UpdateAsset replaces the asset's classification and re-reconciles the
// owner's bills so the unpaid record tracks the edit immediately.
func (s *assetService) UpdateAsset(ctx context.Context, id string, actorID string, actorRole string, req UpdateAssetRequest) (*AssetResponse, error) {
	asset, err := s.loadOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if err := applyClassification(asset, req); err != nil {
		return nil, err
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assets.Update(txCtx, asset); err != nil {
			return fmt.Errorf("failed to update asset: %w", err)
		}
		s.writeAuditLog(txCtx, actorID, model.ActionUpdateAsset, asset.ID.String(), asset.Name, req)
		_, err := s.taxes.ReconcileUser(txCtx, asset.UserID, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := toAssetResponse(*asset, false)
	return &res, nil
}

// DeleteAsset soft-deletes the asset. Existing tax records and transactions
// are left untouched; billing history outlives the asset.
func (s *assetService) DeleteAsset(ctx context.Context, id string, actorID string, actorRole string) error {
	asset, err := s.loadOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return err
	}

	if err := s.assets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	s.writeAuditLog(ctx, actorID, model.ActionDeleteAsset, id, asset.Name, nil)
	return nil
}

// --- Helpers ---

func (s *assetService) loadOwned(ctx context.Context, id string, actorID string, actorRole string) (*model.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("asset not found")
	}
	if actorRole != model.RoleAdmin && asset.UserID.String() != actorID {
		// Don't leak existence of other users' assets
		return nil, errors.New("asset not found")
	}
	return asset, nil
}

func toAssetResponse(a model.Asset, withComputation bool) AssetResponse {
	res := AssetResponse{
		ID:                  a.ID.String(),
		UserID:              a.UserID.String(),
		Name:                a.Name,
		Category:            a.Category,
		Subtype:             a.Subtype,
		Value:               a.Value.StringFixed(2),
		CertificateType:     a.CertificateType,
		LandType:            a.LandType,
		BuildingType:        a.BuildingType,
		StructureMaterial:   a.StructureMaterial,
		VehicleType:         a.VehicleType,
		FuelType:            a.FuelType,
		EngineType:          a.EngineType,
		InvestmentType:      a.InvestmentType,
		InventoryCategory:   a.InventoryCategory,
		ReceivableStatus:    a.ReceivableStatus,
		IntangibleAssetType: a.IntangibleAssetType,
		OwnershipStatus:     a.OwnershipStatus,
		TaxAmount:           a.TaxAmount.StringFixed(2),
		TaxRate:             a.TaxRate.StringFixed(2),
		Description:         a.Description,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
	}
	if withComputation {
		computation := taxation.Compute(taxation.ClassificationOf(a))
		res.Computation = &computation
	}
	return res
}

// Best-effort audit write, never fails the operation
func (s *assetService) writeAuditLog(ctx context.Context, actorID, action, entityID, entityName string, details interface{}) {
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
	if actorID != "" {
		if parsed, err := uuid.Parse(actorID); err == nil {
			entry.UserID = &parsed
		}
	}
	_ = s.audit.Log(ctx, &entry)
}
