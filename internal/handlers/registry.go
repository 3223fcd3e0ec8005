package handlers

// AppHandlers holds every HTTP handler the router mounts.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	TaskHandler         *TaskHandler
	WithdrawalHandler   *WithdrawalHandler
	UpgradeHandler      *UpgradeHandler
	ReferralHandler     *ReferralHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler
}
