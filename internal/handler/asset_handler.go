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

type AssetHandler struct {
	assetService service.AssetService
}

func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	assets := router.Group("/api/assets")
	assets.Use(middleware.RequireRole(model.RoleAdmin, model.RoleTaxpayer))
	{
		assets.GET("", h.ListAssets)
		assets.POST("", h.CreateAsset)
		assets.GET("/:id", h.GetAsset)
		assets.PUT("/:id", h.UpdateAsset)
		assets.DELETE("/:id", h.DeleteAsset)
	}
}

// CreateAsset handles POST /api/assets; the first tax bill is issued in the
// same request.
// @Summary      Register an asset
// @Description  Registers a taxable asset for the current user and issues its first bill
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateAssetRequest  true  "Asset Payload"
// @Success      201      {object}  response.Response{data=service.AssetResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req service.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	actorID, _ := actor(c)
	asset, err := h.assetService.CreateAsset(c.Request.Context(), actorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, asset))
}

// ListAssets handles GET /api/assets. Taxpayers see their own assets,
// admins see everything.
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response
// @Router       /api/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	p := pagination.Parse(c)
	actorID, role := actor(c)

	assets, total, err := h.assetService.ListAssets(c.Request.Context(), actorID, role, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload(assets, total, p.Page, p.Limit)))
}

// GetAsset handles GET /api/assets/:id including the full rate breakdown
// @Summary      Get asset detail
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.Response{data=service.AssetResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	actorID, role := actor(c)

	asset, err := h.assetService.GetAsset(c.Request.Context(), c.Param("id"), actorID, role)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// UpdateAsset handles PUT /api/assets/:id; the unpaid bill is repriced in
// the same request.
// @Summary      Update an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Asset ID"
// @Param        payload  body      service.CreateAssetRequest  true  "Asset Payload"
// @Success      200      {object}  response.Response{data=service.AssetResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req service.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	actorID, role := actor(c)
	asset, err := h.assetService.UpdateAsset(c.Request.Context(), c.Param("id"), actorID, role, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// DeleteAsset handles DELETE /api/assets/:id
// @Summary      Delete an asset
// @Description  Soft-deletes the asset; billing history is preserved
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	actorID, role := actor(c)

	if err := h.assetService.DeleteAsset(c.Request.Context(), c.Param("id"), actorID, role); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "asset deleted"}))
}
