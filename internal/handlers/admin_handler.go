package handlers

import (
	"net/http"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/services"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin panel: user management, moderation of
// withdrawals and upgrades, task authoring, announcements and stats.
type AdminHandler struct {
	*BaseHandler
	adminService      services.AdminService
	withdrawalService services.WithdrawalService
	upgradeService    services.UpgradeService
	taskService       services.TaskService
	dashboardService  services.DashboardService
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	withdrawalService services.WithdrawalService,
	upgradeService services.UpgradeService,
	taskService services.TaskService,
	dashboardService services.DashboardService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:       base,
		adminService:      adminService,
		withdrawalService: withdrawalService,
		upgradeService:    upgradeService,
		taskService:       taskService,
		dashboardService:  dashboardService,
	}
}

// RegisterRoutes expects a group already behind AuthMiddleware and
// AdminMiddleware.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("/:id/suspend", h.SuspendUser)
		users.POST("/:id/activate", h.ActivateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.GET("", h.ListWithdrawals)
		withdrawals.POST("/:id/approve", h.ApproveWithdrawal)
		withdrawals.POST("/:id/decline", h.DeclineWithdrawal)
		withdrawals.POST("/:id/mark-paid", h.MarkWithdrawalPaid)
	}

	upgrades := rg.Group("/upgrades")
	{
		upgrades.GET("", h.ListPendingUpgrades)
		upgrades.POST("/:id/approve", h.ApproveUpgrade)
		upgrades.POST("/:id/reject", h.RejectUpgrade)
	}

	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.POST("/:id/archive", h.ArchiveTask)
		tasks.POST("/:id/restore", h.RestoreTask)
	}

	rg.GET("/dashboard", h.DashboardStats)
	rg.POST("/invite", h.InviteAdmin)
	rg.POST("/announce", h.Announce)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter dto.AdminUserFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	resp, err := h.adminService.ListUsers(h.GetDB(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	if err := h.adminService.SuspendUser(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User suspended."})
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	if err := h.adminService.ActivateUser(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User activated."})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}

func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	status := models.WithdrawalStatus(c.DefaultQuery("status", string(models.WithdrawalStatusPending)))
	switch status {
	case models.WithdrawalStatusPending, models.WithdrawalStatusApproved,
		models.WithdrawalStatusDeclined, models.WithdrawalStatusPaid:
	default:
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown withdrawal status"))
		return
	}

	page, pageSize := ParsePagination(c)
	withdrawals, err := h.withdrawalService.ListByStatus(h.GetDB(c), status, pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
}

func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	if err := h.withdrawalService.Approve(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal approved."})
}

func (h *AdminHandler) DeclineWithdrawal(c *gin.Context) {
	if err := h.withdrawalService.Decline(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal declined, funds returned."})
}

func (h *AdminHandler) MarkWithdrawalPaid(c *gin.Context) {
	if err := h.withdrawalService.MarkPaid(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal marked as paid."})
}

func (h *AdminHandler) ListPendingUpgrades(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	upgrades, err := h.upgradeService.ListPending(h.GetDB(c), pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upgrades": upgrades})
}

func (h *AdminHandler) ApproveUpgrade(c *gin.Context) {
	if err := h.upgradeService.Approve(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upgrade approved."})
}

func (h *AdminHandler) RejectUpgrade(c *gin.Context) {
	if err := h.upgradeService.Reject(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upgrade rejected."})
}

func (h *AdminHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListAll(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *AdminHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *AdminHandler) ArchiveTask(c *gin.Context) {
	if err := h.taskService.SetArchived(h.GetDB(c), c.Param("id"), true); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task archived."})
}

func (h *AdminHandler) RestoreTask(c *gin.Context) {
	if err := h.taskService.SetArchived(h.GetDB(c), c.Param("id"), false); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task restored."})
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) InviteAdmin(c *gin.Context) {
	var req dto.InviteAdminRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.adminService.InviteAdmin(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin invited, credentials sent by email.",
		"user":    profile,
	})
}

func (h *AdminHandler) Announce(c *gin.Context) {
	var req dto.AnnouncementRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	count, err := h.adminService.Announce(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Announcement sent.",
		"recipients": count,
	})
}
