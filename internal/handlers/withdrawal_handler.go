package handlers

import (
	"net/http"

	"github.com/michealohagwam/dta-backend-clean/internal/services"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	*BaseHandler
	withdrawalService services.WithdrawalService
}

func NewWithdrawalHandler(base *BaseHandler, withdrawalService services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{
		BaseHandler:       base,
		withdrawalService: withdrawalService,
	}
}

// RegisterRoutes expects a group already behind AuthMiddleware.
func (h *WithdrawalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.POST("", h.Create)
		withdrawals.GET("", h.List)
	}
}

func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWithdrawalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	withdrawal, err := h.withdrawalService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, withdrawal)
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	withdrawals, err := h.withdrawalService.ListForUser(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
}
