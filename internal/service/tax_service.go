package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"taxportal/internal/model"
	"taxportal/internal/repository"
	"taxportal/internal/taxation"
	"taxportal/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// ComputeTaxRequest carries a classification for a stateless rate preview.
// Only the attributes relevant to the subtype are consulted; the rest are
// ignored. A missing or malformed value previews as zero, never errors.
type ComputeTaxRequest struct {
	Subtype             string `json:"subtype" binding:"required"`
	Value               string `json:"value"`
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
}

type PayTaxRequest struct {
	Method string `json:"method" binding:"required,oneof=TRANSFER_BANK VIRTUAL_ACCOUNT QRIS TUNAI"`
}

type TaxRecordResponse struct {
	ID        string  `json:"id"`
	AssetID   string  `json:"asset_id"`
	AssetName string  `json:"asset_name,omitempty"`
	Amount    string  `json:"amount"`
	Rate      string  `json:"rate"`
	Status    string  `json:"status"`
	DueDate   string  `json:"due_date"`
	PaidAt    *string `json:"paid_at"`
	CreatedAt string  `json:"created_at"`
}

type TransactionResponse struct {
	ID          string `json:"id"`
	TaxRecordID string `json:"tax_record_id"`
	AssetID     string `json:"asset_id"`
	Amount      string `json:"amount"`
	Method      string `json:"method"`
	Reference   string `json:"reference"`
	CreatedAt   string `json:"created_at"`
}

type ReconcileSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// --- Interface ---

type TaxService interface {
	ComputePreview(req ComputeTaxRequest) taxation.Result
	ListTaxes(ctx context.Context, userID *uuid.UUID, status string, page, limit int) ([]TaxRecordResponse, int64, error)
	GetTax(ctx context.Context, id string, actorID string, actorRole string) (*TaxRecordResponse, error)
	Pay(ctx context.Context, id string, actorID string, actorRole string, req PayTaxRequest) (*TransactionResponse, error)
	ReconcileUser(ctx context.Context, userID uuid.UUID, actorID string) (*ReconcileSummary, error)
}

type taxService struct {
	assets       repository.AssetRepository
	taxes        repository.TaxRepository
	transactions repository.TransactionRepository
	audit        repository.AuditRepository
	txm          repository.TransactionManager
	hub          *websocket.Hub
}

func NewTaxService(
	assets repository.AssetRepository,
	taxes repository.TaxRepository,
	transactions repository.TransactionRepository,
	audit repository.AuditRepository,
	txm repository.TransactionManager,
	hub *websocket.Hub,
) TaxService {
	return &taxService{
		assets:       assets,
		taxes:        taxes,
		transactions: transactions,
		audit:        audit,
		txm:          txm,
		hub:          hub,
	}
}

// --- Implementation ---

// parseValue coerces a monetary input to a non-negative decimal. Malformed
// or negative input means "no value yet", not an error. Asset entry is
// multi-step and drafts are expected.
func parseValue(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil || v.Sign() < 0 {
		return decimal.Zero
	}
	return v
}

func (s *taxService) ComputePreview(req ComputeTaxRequest) taxation.Result {
	return taxation.Compute(taxation.Classification{
		Subtype:             req.Subtype,
		Value:               parseValue(req.Value),
		CertificateType:     req.CertificateType,
		LandType:            req.LandType,
		BuildingType:        req.BuildingType,
		StructureMaterial:   req.StructureMaterial,
		VehicleType:         req.VehicleType,
		FuelType:            req.FuelType,
		EngineType:          req.EngineType,
		InvestmentType:      req.InvestmentType,
		InventoryCategory:   req.InventoryCategory,
		ReceivableStatus:    req.ReceivableStatus,
		IntangibleAssetType: req.IntangibleAssetType,
		OwnershipStatus:     req.OwnershipStatus,
	})
}

func (s *taxService) ListTaxes(ctx context.Context, userID *uuid.UUID, status string, page, limit int) ([]TaxRecordResponse, int64, error) {
	records, total, err := s.taxes.List(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tax records: %w", err)
	}

	res := make([]TaxRecordResponse, 0, len(records))
	for _, r := range records {
		res = append(res, toTaxRecordResponse(r))
	}

	return res, total, nil
}

func (s *taxService) GetTax(ctx context.Context, id string, actorID string, actorRole string) (*TaxRecordResponse, error) {
	record, err := s.taxes.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("tax record not found")
	}
	if actorRole != model.RoleAdmin && record.UserID.String() != actorID {
		// Don't leak existence of other users' bills
		return nil, errors.New("tax record not found")
	}

	res := toTaxRecordResponse(*record)
	return &res, nil
}

// Pay flips an unpaid record to PAID exactly once and writes the payment
// transaction in the same database transaction. The stored amount is what
// gets charged; it is never recomputed here. A paid bill documents what
// the citizen actually owed at payment time.
func (s *taxService) Pay(ctx context.Context, id string, actorID string, actorRole string, req PayTaxRequest) (*TransactionResponse, error) {
	var res *TransactionResponse

	err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		record, err := s.taxes.GetByID(txCtx, id)
		if err != nil {
			return errors.New("tax record not found")
		}
		if actorRole != model.RoleAdmin && record.UserID.String() != actorID {
			return errors.New("tax record not found")
		}
		if record.Status == model.TaxStatusPaid {
			return errors.New("tax record is already paid")
		}

		now := time.Now()
		record.Status = model.TaxStatusPaid
		record.PaidAt = &now
		if err := s.taxes.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to update tax record: %w", err)
		}

		trx := &model.Transaction{
			UserID:      record.UserID,
			TaxRecordID: record.ID,
			AssetID:     record.AssetID,
			Amount:      record.Amount,
			Method:      req.Method,
			Reference:   newPaymentReference(now),
		}
		if err := s.transactions.Create(txCtx, trx); err != nil {
			return fmt.Errorf("failed to record payment transaction: %w", err)
		}

		s.writeAuditLog(txCtx, actorID, model.ActionPayTax, record.ID.String(), trx.Reference, map[string]string{
			"method": req.Method,
			"amount": record.Amount.StringFixed(2),
		})

		r := toTransactionResponse(*trx)
		res = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastEvent(websocket.Event{Type: websocket.EventTaxPaid, Payload: res})

	return res, nil
}

// ReconcileUser loads the user's full asset and tax snapshots, runs the
// reconciliation, and persists exactly what changed: corrected unpaid
// records in place, new records appended.
func (s *taxService) ReconcileUser(ctx context.Context, userID uuid.UUID, actorID string) (*ReconcileSummary, error) {
	summary := &ReconcileSummary{}
	var issued, repriced []TaxRecordResponse

	err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		assets, err := s.assets.ListByUser(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to load assets: %w", err)
		}
		records, err := s.taxes.ListByUser(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to load tax records: %w", err)
		}

		after := taxation.Reconcile(assets, records, time.Now())

		for i := range after {
			if i < len(records) {
				if records[i].Amount.Equal(after[i].Amount) && records[i].Rate.Equal(after[i].Rate) {
					continue
				}
				if err := s.taxes.Update(txCtx, &after[i]); err != nil {
					return fmt.Errorf("failed to update tax record: %w", err)
				}
				summary.Updated++
				repriced = append(repriced, toTaxRecordResponse(after[i]))
			} else {
				if err := s.taxes.Create(txCtx, &after[i]); err != nil {
					return fmt.Errorf("failed to create tax record: %w", err)
				}
				summary.Created++
				issued = append(issued, toTaxRecordResponse(after[i]))
			}
		}

		if summary.Created > 0 || summary.Updated > 0 {
			s.writeAuditLog(txCtx, actorID, model.ActionReconcileTaxes, userID.String(), "", summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, r := range issued {
		s.hub.BroadcastEvent(websocket.Event{Type: websocket.EventTaxIssued, Payload: r})
	}
	for _, r := range repriced {
		s.hub.BroadcastEvent(websocket.Event{Type: websocket.EventTaxRepriced, Payload: r})
	}

	return summary, nil
}

// --- Helpers ---

func newPaymentReference(t time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "PAY-" + t.Format("20060102") + "-" + short
}

func toTaxRecordResponse(r model.TaxRecord) TaxRecordResponse {
	res := TaxRecordResponse{
		ID:        r.ID.String(),
		AssetID:   r.AssetID.String(),
		Amount:    r.Amount.StringFixed(2),
		Rate:      r.Rate.StringFixed(2),
		Status:    r.Status,
		DueDate:   r.DueDate.Format("2006-01-02"),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.Asset != nil {
		res.AssetName = r.Asset.Name
	}
	if r.PaidAt != nil {
		p := r.PaidAt.Format(time.RFC3339)
		res.PaidAt = &p
	}
	return res
}

func toTransactionResponse(t model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		TaxRecordID: t.TaxRecordID.String(),
		AssetID:     t.AssetID.String(),
		Amount:      t.Amount.StringFixed(2),
		Method:      t.Method,
		Reference:   t.Reference,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// Best-effort audit write, never fails the operation
func (s *taxService) writeAuditLog(ctx context.Context, actorID, action, entityID, entityName string, details interface{}) {
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
