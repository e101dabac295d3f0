package monitor

import (
	"context"
	"log"
	"time"

	"github.com/mattmezza/airalert/internal/alerter"
	"github.com/mattmezza/airalert/internal/status"
)

// Fetcher retrieves one status snapshot from the data source.
type Fetcher interface {
	Fetch(ctx context.Context) (status.Snapshot, error)
}

// Monitor runs the fetch, compare, notify, sleep loop for one region.
type Monitor struct {
	region   string
	interval time.Duration
	fetcher  Fetcher
	alerter  *alerter.Alerter
	now      func() time.Time
}

func New(region string, interval time.Duration, fetcher Fetcher, a *alerter.Alerter) *Monitor {
	return &Monitor{
		region:   region,
		interval: interval,
		fetcher:  fetcher,
		alerter:  a,
		now:      time.Now,
	}
}

// Tick performs one fetch and applies the observed status. Fetch failures and
// a missing region are logged and leave the alert state untouched.
func (m *Monitor) Tick(ctx context.Context) (alerter.EventType, bool) {
	snapshot, err := m.fetcher.Fetch(ctx)
	if err != nil {
		log.Printf("Fetch failed: %v", err)
		return alerter.EventTypeNone, false
	}

	observed, found := snapshot.Lookup(m.region)
	if !found {
		log.Printf("Region %q not present in status document", m.region)
	}
	return m.alerter.Observe(m.now(), observed)
}

// Run ticks immediately and then every interval until ctx is cancelled. The
// interval is measured from the end of one tick to the start of the next.
func (m *Monitor) Run(ctx context.Context) {
	log.Printf("Monitoring region %s every %s", m.region, m.interval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Monitor stopped: %v", ctx.Err())
			return
		case <-timer.C:
			m.Tick(ctx)
			timer.Reset(m.interval)
		}
	}
}
