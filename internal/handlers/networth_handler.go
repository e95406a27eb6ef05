package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nidhi/internal/services"
)

// NetWorthHandler serves the combined asset/liability position.
type NetWorthHandler struct {
	assetService     services.AssetServicer
	liabilityService services.LiabilityServicer
}

// NewNetWorthHandler creates a new NetWorthHandler.
func NewNetWorthHandler(assetService services.AssetServicer, liabilityService services.LiabilityServicer) *NetWorthHandler {
	return &NetWorthHandler{assetService: assetService, liabilityService: liabilityService}
}

// GetNetWorth returns total assets minus total liabilities.
// @Summary     Get net worth
// @Description Get the authenticated user's total assets, total liabilities, and net worth
// @Tags        summary
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SuccessResponse{data=NetWorthResponse} "Net worth"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /net-worth [get]
func (h *NetWorthHandler) GetNetWorth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assets, err := h.assetService.GetAssetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	liabilities, err := h.liabilityService.GetLiabilitySummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Net worth retrieved", NetWorthResponse{
		TotalAssets:      assets.Total,
		TotalLiabilities: liabilities.Total,
		NetWorth:         assets.Total - liabilities.Total,
	})
}
