package handlers

import (
	"net/http"

	"github.com/michealohagwam/dta-backend-clean/internal/services"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UpgradeHandler struct {
	*BaseHandler
	upgradeService services.UpgradeService
}

func NewUpgradeHandler(base *BaseHandler, upgradeService services.UpgradeService) *UpgradeHandler {
	return &UpgradeHandler{
		BaseHandler:    base,
		upgradeService: upgradeService,
	}
}

// RegisterRoutes expects a group already behind AuthMiddleware.
func (h *UpgradeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	upgrades := rg.Group("/upgrades")
	{
		upgrades.POST("", h.Create)
		upgrades.GET("", h.List)
	}
}

func (h *UpgradeHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUpgradeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	upgrade, err := h.upgradeService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, upgrade)
}

func (h *UpgradeHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	upgrades, err := h.upgradeService.ListForUser(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upgrades": upgrades})
}
