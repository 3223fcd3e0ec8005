package services

import (
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"
)

// requireActiveAccount gates state-changing operations on the account
// lifecycle. Suspension takes effect on the next operation, not at token
// expiry.
func requireActiveAccount(user *models.User) error {
	if user.Status == models.UserStatusSuspended {
		return apperrors.ErrAccountSuspended
	}
	if !user.IsVerified {
		return apperrors.ErrAccountNotVerified
	}
	return nil
}
