package handlers

import (
	"net/http"

	"github.com/michealohagwam/dta-backend-clean/internal/services"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	*BaseHandler
	referralService services.ReferralService
}

func NewReferralHandler(base *BaseHandler, referralService services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		BaseHandler:     base,
		referralService: referralService,
	}
}

// RegisterRoutes expects a group already behind AuthMiddleware.
func (h *ReferralHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/referrals", h.List)
}

func (h *ReferralHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	referrals, err := h.referralService.ListForUser(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"referrals": referrals})
}
