package email

// Provider is the outbound-mail surface the services depend on. Delivery is
// best-effort from the caller's perspective; failures never roll back a
// committed state transition.
type Provider interface {
	// Send delivers a single message.
	Send(to, subject, htmlBody string) error

	// SendVerification delivers the signup verification link.
	SendVerification(to, username, token string) error

	// SendNotification delivers a rendered notification message.
	SendNotification(to, subject, message string) error

	// SendAdminInvite delivers generated credentials to a new admin.
	SendAdminInvite(to, password string) error
}
