package alerter

import (
	"log"
	"time"

	"github.com/mattmezza/airalert/internal/notifier"
	"github.com/mattmezza/airalert/internal/status"
)

type EventType string

const (
	EventTypeNone     EventType = ""
	EventTypeFired    EventType = notifier.StateFired
	EventTypeResolved EventType = notifier.StateResolved
)

// Evaluate is the transition function of the alert state machine. It returns
// the next state and the event the transition produced, if any.
func Evaluate(active bool, observed string) (bool, EventType) {
	switch {
	case !active && observed == status.Full:
		return true, EventTypeFired
	case active && (observed == status.Null || observed == status.NoData):
		return false, EventTypeResolved
	default:
		return active, EventTypeNone
	}
}

// Alerter tracks whether the alert for one region is active and fires every
// notifier once per edge. It is not safe for concurrent use; the monitor loop
// is its only caller.
type Alerter struct {
	region    string
	active    bool
	notifiers map[string]notifier.Notifier
	templates notifier.NotificationTemplates
}

func NewAlerter(region string, notifiers map[string]notifier.Notifier, templates notifier.NotificationTemplates) *Alerter {
	return &Alerter{
		region:    region,
		notifiers: notifiers,
		templates: templates,
	}
}

func (a *Alerter) Active() bool {
	return a.active
}

// Observe applies one observed status. On a transition it launches every
// notifier in its own goroutine and returns without waiting for them.
func (a *Alerter) Observe(now time.Time, observed string) (EventType, bool) {
	next, event := Evaluate(a.active, observed)
	if event == EventTypeNone {
		return EventTypeNone, false
	}
	a.active = next

	severity := notifier.SeverityInfo
	if event == EventTypeFired {
		severity = notifier.SeverityWarning
		log.Printf("ALERT FIRED: air raid alert in region %s (status: %s)", a.region, observed)
	} else {
		log.Printf("ALERT RESOLVED: air raid alert cleared in region %s (status: %s)", a.region, observed)
	}

	data := notifier.NotificationData{
		Region:   a.region,
		Status:   observed,
		State:    string(event),
		Severity: severity,
		Time:     now,
	}
	rendered, err := notifier.Render(a.templates, data)
	if err != nil {
		log.Printf("Failed to render notification for region %s: %v", a.region, err)
		rendered = data
		rendered.Title = string(event)
		rendered.Message = a.region
	}

	for channelName, n := range a.notifiers {
		go send(channelName, n, rendered)
	}
	return event, true
}

// send runs detached; failures never reach the alert state.
func send(channelName string, n notifier.Notifier, data notifier.NotificationData) {
	if err := n.Send(data); err != nil {
		log.Printf("Failed to send %s notification via channel '%s': %v", data.State, channelName, err)
	}
}
