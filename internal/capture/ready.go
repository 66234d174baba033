package capture

import (
	"context"
	"time"
)

// Sizer reports a video frame size. Zero means not ready yet.
type Sizer interface {
	Size() (width, height int)
}

// WaitReady polls s every interval until it reports a nonzero size or ctx
// is done.
func WaitReady(ctx context.Context, s Sizer, interval time.Duration) (width, height int, err error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if w, h := s.Size(); w > 0 && h > 0 {
			return w, h, nil
		}
		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		case <-ticker.C:
		}
	}
}
