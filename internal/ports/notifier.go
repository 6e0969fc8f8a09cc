package ports

import "time"

// Notifier shows transient messages to the user
type Notifier interface {
	Notify(message string, duration time.Duration)
}
