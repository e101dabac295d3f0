package notifier

import (
	"github.com/gen2brain/beeep"
)

const DialogChannelName = "dialog"

// Freedesktop icon names; severity only changes the icon since the sound
// notifier already plays the alert audio.
const (
	warningIcon = "dialog-warning"
	infoIcon    = "dialog-information"
)

// DialogNotifier pops up a desktop notification through beeep.Notify.
type DialogNotifier struct {
	show func(title, message, icon string) error
}

func NewDialogNotifier() *DialogNotifier {
	return &DialogNotifier{show: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

func (dn *DialogNotifier) Name() string {
	return DialogChannelName
}

func (dn *DialogNotifier) Send(data NotificationData) error {
	icon := infoIcon
	if data.Severity == SeverityWarning {
		icon = warningIcon
	}
	return dn.show(data.Title, data.Message, icon)
}
