package hrclient

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultNotificationTimeout = 5 * time.Second

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

type Notification struct {
	ID      string
	Type    NotificationType
	Message string
	// Timeout of zero keeps the notification until it is removed.
	Timeout time.Duration
}

// Notifications is a user-facing message queue whose entries expire on
// their own unless added with a zero timeout.
type Notifications struct {
	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
}

func NewNotifications() *Notifications {
	return &Notifications{timers: make(map[string]*time.Timer)}
}

// Add queues a notification and returns its id. Without a timeout the
// default applies.
func (n *Notifications) Add(kind NotificationType, message string, timeout ...time.Duration) string {
	ttl := DefaultNotificationTimeout
	if len(timeout) > 0 {
		ttl = timeout[0]
	}

	item := Notification{
		ID:      uuid.NewString(),
		Type:    kind,
		Message: message,
		Timeout: ttl,
	}

	n.mu.Lock()
	n.items = append(n.items, item)
	if ttl > 0 {
		n.timers[item.ID] = time.AfterFunc(ttl, func() { n.Remove(item.ID) })
	}
	n.mu.Unlock()

	return item.ID
}

func (n *Notifications) Remove(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the live notifications, oldest first.
func (n *Notifications) List() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.items...)
}

func (n *Notifications) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	n.items = nil
}

func (n *Notifications) Success(message string, timeout ...time.Duration) string {
	return n.Add(NotificationSuccess, message, timeout...)
}

func (n *Notifications) Error(message string, timeout ...time.Duration) string {
	return n.Add(NotificationError, message, timeout...)
}

func (n *Notifications) Warning(message string, timeout ...time.Duration) string {
	return n.Add(NotificationWarning, message, timeout...)
}

func (n *Notifications) Info(message string, timeout ...time.Duration) string {
	return n.Add(NotificationInfo, message, timeout...)
}
