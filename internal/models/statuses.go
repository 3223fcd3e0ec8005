package models

type UserStatus string
type UserRole string
type WithdrawalStatus string
type UpgradeStatus string
type TransactionType string
type TransactionStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusVerified  UserStatus = "verified"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"

	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusDeclined WithdrawalStatus = "declined"
	WithdrawalStatusPaid     WithdrawalStatus = "paid"

	UpgradeStatusPending  UpgradeStatus = "pending"
	UpgradeStatusApproved UpgradeStatus = "approved"
	UpgradeStatusRejected UpgradeStatus = "rejected"

	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDeposit    TransactionType = "deposit"

	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)
