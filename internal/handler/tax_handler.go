package handler

import (
	"net/http"

	"taxportal/internal/middleware"
	"taxportal/internal/model"
	"taxportal/internal/service"
	"taxportal/pkg/pagination"
	"taxportal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaxHandler struct {
	taxService service.TaxService
}

func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	taxes := router.Group("/api/taxes")
	taxes.Use(middleware.RequireRole(model.RoleAdmin, model.RoleTaxpayer))
	{
		taxes.GET("", h.ListTaxes)
		taxes.POST("/compute", h.ComputeTax)
		taxes.POST("/reconcile", h.Reconcile)
		taxes.GET("/:id", h.GetTax)
		taxes.POST("/:id/pay", h.PayTax)
	}
}

// ListTaxes handles GET /api/taxes. Taxpayers see their own bills, admins
// see every bill; ?status=UNPAID|PAID filters.
// @Summary      List tax records
// @Tags         taxes
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (UNPAID or PAID)"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  response.Response
// @Router       /api/taxes [get]
func (h *TaxHandler) ListTaxes(c *gin.Context) {
	p := pagination.Parse(c)
	actorID, role := actor(c)

	var filter *uuid.UUID
	if role != model.RoleAdmin {
		ownerID, err := uuid.Parse(actorID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid user id"))
			return
		}
		filter = &ownerID
	}

	records, total, err := h.taxService.ListTaxes(c.Request.Context(), filter, c.Query("status"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload(records, total, p.Page, p.Limit)))
}

// ComputeTax handles POST /api/taxes/compute, a stateless preview of the
// rate breakdown for a classification. Nothing is persisted.
// @Summary      Preview tax computation
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ComputeTaxRequest  true  "Classification"
// @Success      200      {object}  response.Response{data=taxation.Result}
// @Failure      400      {object}  response.Response
// @Router       /api/taxes/compute [post]
func (h *TaxHandler) ComputeTax(c *gin.Context) {
	var req service.ComputeTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.taxService.ComputePreview(req)))
}

// Reconcile handles POST /api/taxes/reconcile. It re-runs billing for the
// current user; an admin may reconcile any user via ?user_id=.
// @Summary      Reconcile tax records
// @Description  Ensures every asset has one up-to-date unpaid bill
// @Tags         taxes
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Target user (admin only)"
// @Success      200      {object}  response.Response{data=service.ReconcileSummary}
// @Failure      400      {object}  response.Response
// @Router       /api/taxes/reconcile [post]
func (h *TaxHandler) Reconcile(c *gin.Context) {
	actorID, role := actor(c)

	target := actorID
	if override := c.Query("user_id"); override != "" && role == model.RoleAdmin {
		target = override
	}

	targetID, err := uuid.Parse(target)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid user id"))
		return
	}

	summary, err := h.taxService.ReconcileUser(c.Request.Context(), targetID, actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// GetTax handles GET /api/taxes/:id
// @Summary      Get tax record
// @Tags         taxes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tax Record ID"
// @Success      200  {object}  response.Response{data=service.TaxRecordResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/taxes/{id} [get]
func (h *TaxHandler) GetTax(c *gin.Context) {
	actorID, role := actor(c)

	record, err := h.taxService.GetTax(c.Request.Context(), c.Param("id"), actorID, role)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// PayTax handles POST /api/taxes/:id/pay. Paying is irreversible; the
// charged amount is the stored one, never recomputed.
// @Summary      Pay a tax bill
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Tax Record ID"
// @Param        payload  body      service.PayTaxRequest  true  "Payment Method"
// @Success      200      {object}  response.Response{data=service.TransactionResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/taxes/{id}/pay [post]
func (h *TaxHandler) PayTax(c *gin.Context) {
	var req service.PayTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	actorID, role := actor(c)
	trx, err := h.taxService.Pay(c.Request.Context(), c.Param("id"), actorID, role, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, trx))
}
