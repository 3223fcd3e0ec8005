package services

// Realtime event names pushed over the websocket channel.
const (
	EventBalanceUpdate   = "balance-update"
	EventStatusUpdate    = "status-update"
	EventTaskUpdate      = "task-update"
	EventUpgradeUpdate   = "upgrade-update"
	EventNewTask         = "new-task"
	EventDashboardUpdate = "dashboard-update"
	EventNotification    = "notification"
)

// Broadcaster is the realtime push surface. Implemented by ws.Manager;
// injected so services never reach into ambient state.
type Broadcaster interface {
	BroadcastToUser(userID string, event string, payload any)
	BroadcastAll(event string, payload any)
}

// NopBroadcaster satisfies Broadcaster where no realtime channel exists.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastToUser(string, string, any) {}
func (NopBroadcaster) BroadcastAll(string, any)            {}
