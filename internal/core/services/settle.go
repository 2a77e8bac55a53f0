package services

import (
	"context"
	"time"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
)

// SettlePollInterval is how often Settle samples the browser.
const SettlePollInterval = 25 * time.Millisecond

// Settle waits until browser is no longer loading and returns its snapshot.
// The first sample is taken after one poll interval so that a command issued
// just before has been picked up. It gives up after timeout or when ctx ends
// and returns the snapshot at that point.
func Settle(ctx context.Context, browser driving.CatalogueBrowser, timeout time.Duration) domain.Snapshot {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(SettlePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return browser.Snapshot()
		case <-deadline.C:
			return browser.Snapshot()
		case <-ticker.C:
			if snap := browser.Snapshot(); !snap.Status.IsLoading() {
				return snap
			}
		}
	}
}
