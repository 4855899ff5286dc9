package handler

import (
	"net/http"

	"taxportal/internal/middleware"
	"taxportal/internal/model"
	"taxportal/internal/service"
	"taxportal/pkg/pagination"
	"taxportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	txs := router.Group("/api/transactions")
	txs.Use(middleware.RequireRole(model.RoleAdmin, model.RoleTaxpayer))
	{
		txs.GET("", h.ListTransactions)
	}
}

// ListTransactions handles GET /api/transactions. Taxpayers see their own
// payment history, admins see everything.
// @Summary      List payment transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	p := pagination.Parse(c)
	actorID, role := actor(c)

	txs, total, err := h.transactionService.ListTransactions(c.Request.Context(), actorID, role, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload(txs, total, p.Page, p.Limit)))
}
