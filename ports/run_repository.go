// Package ports defines the interfaces the service core depends on; adapters
// provide the implementations.
package ports

import (
	"context"

	"meterrecon/domain/recon"
)

// RunRepository persists reconciliation run history. A nil repository means
// history is disabled; callers must tolerate that.
type RunRepository interface {
	Create(ctx context.Context, rec *recon.RunRecord) error
	ListRecent(ctx context.Context, limit int) ([]*recon.RunRecord, error)
}
