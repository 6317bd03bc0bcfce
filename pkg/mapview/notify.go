package mapview

import (
	"sync"

	"nearby-places/pkg/logger"
)

// LogNotifier writes user notifications to the log at warn level.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.GetLogger().WithField("component", "notifier")}
}

func (n *LogNotifier) NotifyUser(message string) {
	n.log.WithField("notification", message).Warn("User notification")
}

// Inbox records notifications for later display.
type Inbox struct {
	mu       sync.Mutex
	messages []string
}

func (i *Inbox) NotifyUser(message string) {
	i.mu.Lock()
	i.messages = append(i.messages, message)
	i.mu.Unlock()
}

func (i *Inbox) Messages() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]string, len(i.messages))
	copy(out, i.messages)
	return out
}

// Notifiers fans a notification out in order.
type Notifiers []Notifier

func (ns Notifiers) NotifyUser(message string) {
	for _, n := range ns {
		n.NotifyUser(message)
	}
}
