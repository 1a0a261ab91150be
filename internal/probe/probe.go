package probe

import (
	"context"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// Checker performs a single probe of a target. Implementations make
// exactly one attempt; retry cadence belongs to the external scheduler.
type Checker interface {
	Check(ctx context.Context, target domain.ProbeTarget) domain.ProbeResult
}
