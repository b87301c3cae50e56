// Package notification is the boundary to the host's notification
// capability. The core only emits fired-reminder events through it and
// does not depend on how or whether they are displayed.
package notification

import (
	"keep-notes/src/domain"

	"github.com/gen2brain/beeep"
)

// Notifier receives fired-reminder events.
type Notifier interface {
	// Available reports whether the host can display notifications. When
	// false the scheduler skips scanning entirely.
	Available() bool
	Notify(note domain.Note) error
}

// DesktopNotifier shows reminders as desktop notifications.
type DesktopNotifier struct{}

// NewDesktopNotifier creates a desktop notifier.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

// Available implements Notifier.
func (d *DesktopNotifier) Available() bool {
	return true
}

// Notify displays the reminder notification for a note.
func (d *DesktopNotifier) Notify(note domain.Note) error {
	body := note.Title
	if body == "" {
		body = "You have a reminder!"
	}
	return beeep.Notify("Note Reminder", body, "")
}

// NopNotifier は通知機能が無効な環境向けの実装
type NopNotifier struct{}

// Available implements Notifier.
func (NopNotifier) Available() bool { return false }

// Notify implements Notifier.
func (NopNotifier) Notify(domain.Note) error { return nil }
