package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taxportal/internal/model"
	"taxportal/internal/service"
	"taxportal/internal/taxation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeTaxService struct {
	listFilter *uuid.UUID
	listStatus string
	payID      string
	payMethod  string
	payErr     error
}

func (f *fakeTaxService) ComputePreview(req service.ComputeTaxRequest) taxation.Result {
	return taxation.Compute(taxation.Classification{
		Subtype:         req.Subtype,
		Value:           dec(req.Value),
		CertificateType: req.CertificateType,
		LandType:        req.LandType,
		VehicleType:     req.VehicleType,
		FuelType:        req.FuelType,
		EngineType:      req.EngineType,
		OwnershipStatus: req.OwnershipStatus,
	})
}

func (f *fakeTaxService) ListTaxes(_ context.Context, userID *uuid.UUID, status string, _, _ int) ([]service.TaxRecordResponse, int64, error) {
	f.listFilter = userID
	f.listStatus = status
	return []service.TaxRecordResponse{}, 0, nil
}

func (f *fakeTaxService) GetTax(_ context.Context, id, _, _ string) (*service.TaxRecordResponse, error) {
	return &service.TaxRecordResponse{ID: id, Status: model.TaxStatusUnpaid}, nil
}

func (f *fakeTaxService) Pay(_ context.Context, id, _, _ string, req service.PayTaxRequest) (*service.TransactionResponse, error) {
	f.payID = id
	f.payMethod = req.Method
	if f.payErr != nil {
		return nil, f.payErr
	}
	return &service.TransactionResponse{ID: uuid.NewString(), TaxRecordID: id, Method: req.Method}, nil
}

func (f *fakeTaxService) ReconcileUser(_ context.Context, _ uuid.UUID, _ string) (*service.ReconcileSummary, error) {
	return &service.ReconcileSummary{Created: 1}, nil
}

func newTaxTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestComputeTaxPreview(t *testing.T) {
	h := NewTaxHandler(&fakeTaxService{})

	body := []byte(`{
		"subtype": "VEHICLE",
		"value": "150000000",
		"vehicle_type": "MOBIL_PENUMPANG",
		"fuel_type": "BENSIN",
		"engine_type": "RANGE_1500_2000CC",
		"ownership_status": "MILIK_SENDIRI"
	}`)
	c, w := newTaxTestContext(t, http.MethodPost, "/api/taxes/compute", body)

	h.ComputeTax(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status string          `json:"status"`
		Data   taxation.Result `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if !resp.Data.TotalRate.Equal(dec("1.85")) {
		t.Errorf("total rate = %s, want 1.85", resp.Data.TotalRate)
	}
	if !resp.Data.TaxAmount.Equal(dec("2775000")) {
		t.Errorf("tax amount = %s, want 2775000", resp.Data.TaxAmount)
	}
}

func TestComputeTaxRejectsMissingSubtype(t *testing.T) {
	h := NewTaxHandler(&fakeTaxService{})

	c, w := newTaxTestContext(t, http.MethodPost, "/api/taxes/compute", []byte(`{"value":"1000"}`))

	h.ComputeTax(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListTaxesScopesTaxpayerToOwnRecords(t *testing.T) {
	fake := &fakeTaxService{}
	h := NewTaxHandler(fake)
	ownerID := uuid.New()

	c, w := newTaxTestContext(t, http.MethodGet, "/api/taxes?status=UNPAID", nil)
	c.Set("userID", ownerID.String())
	c.Set("userRole", model.RoleTaxpayer)

	h.ListTaxes(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if fake.listFilter == nil || *fake.listFilter != ownerID {
		t.Errorf("filter = %v, want %s", fake.listFilter, ownerID)
	}
	if fake.listStatus != "UNPAID" {
		t.Errorf("status filter = %q, want UNPAID", fake.listStatus)
	}
}

func TestListTaxesAdminSeesAll(t *testing.T) {
	fake := &fakeTaxService{}
	h := NewTaxHandler(fake)

	c, w := newTaxTestContext(t, http.MethodGet, "/api/taxes", nil)
	c.Set("userID", uuid.NewString())
	c.Set("userRole", model.RoleAdmin)

	h.ListTaxes(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if fake.listFilter != nil {
		t.Errorf("admin listing should not be filtered, got %v", fake.listFilter)
	}
}

func TestPayTax(t *testing.T) {
	fake := &fakeTaxService{}
	h := NewTaxHandler(fake)
	recordID := uuid.NewString()

	c, w := newTaxTestContext(t, http.MethodPost, "/api/taxes/"+recordID+"/pay", []byte(`{"method":"QRIS"}`))
	c.Params = gin.Params{{Key: "id", Value: recordID}}
	c.Set("userID", uuid.NewString())
	c.Set("userRole", model.RoleTaxpayer)

	h.PayTax(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if fake.payID != recordID {
		t.Errorf("paid record id = %q, want %q", fake.payID, recordID)
	}
	if fake.payMethod != model.PaymentMethodQRIS {
		t.Errorf("method = %q, want QRIS", fake.payMethod)
	}
}

func TestPayTaxRejectsInvalidMethod(t *testing.T) {
	h := NewTaxHandler(&fakeTaxService{})

	c, w := newTaxTestContext(t, http.MethodPost, "/api/taxes/x/pay", []byte(`{"method":"CHEQUE"}`))

	h.PayTax(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPayTaxSurfacesServiceError(t *testing.T) {
	fake := &fakeTaxService{payErr: errors.New("tax record already paid")}
	h := NewTaxHandler(fake)

	c, w := newTaxTestContext(t, http.MethodPost, "/api/taxes/x/pay", []byte(`{"method":"TUNAI"}`))
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	c.Set("userID", uuid.NewString())
	c.Set("userRole", model.RoleTaxpayer)

	h.PayTax(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Error != "tax record already paid" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestReconcileAdminOverridesTargetUser(t *testing.T) {
	fake := &fakeTaxService{}
	h := NewTaxHandler(fake)
	target := uuid.NewString()

	c, w := newTaxTestContext(t, http.MethodPost, "/api/taxes/reconcile?user_id="+target, nil)
	c.Set("userID", uuid.NewString())
	c.Set("userRole", model.RoleAdmin)

	h.Reconcile(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
}
