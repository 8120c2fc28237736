package worker

import "context"

// RefreshOnce runs a single refresh pass
func (w *AgeRefreshWorker) RefreshOnce(ctx context.Context) int {
	return w.refresh(ctx)
}
