package services

import (
	"context"
	"sync"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates census data-quality warnings (missing dates,
// zero compensation, empty HCE or NHCE groups) during a service call chain.
// Eligibility and analysis code emits through the context; the upload handler
// drains the collector into the response so bad rows surface without failing
// the import.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus a reference to the collector so the handler can retrieve warnings later.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning appends a warning to the collector in ctx.
// If ctx has no collector, the call is a no-op; census analysis stays usable
// from callers that never surface warnings.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, w)
}

// GetWarnings returns all collected warnings.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return wc.warnings
}
