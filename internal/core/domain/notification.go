package domain

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// A Notification is a human readable message about an operation outcome.
// Kind is set for rejected operations.
type Notification struct {
	Level   NotificationLevel
	Message string
	Kind    ErrorKind
}
