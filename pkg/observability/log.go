package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports export and cache events to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnExportStart(_ context.Context, runID, outputPath string) {
	h.Logger.Debug("export started", "run", runID, "output", outputPath)
}

func (h *LogHooks) OnExportComplete(_ context.Context, runID string, duration time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("export failed", "run", runID, "duration", duration, "error", err)
		return
	}
	h.Logger.Debug("export finished", "run", runID, "duration", duration)
}

func (h *LogHooks) OnStageStart(_ context.Context, stage string) {
	h.Logger.Debug("stage started", "stage", stage)
}

func (h *LogHooks) OnStageComplete(_ context.Context, stage string, count int, duration time.Duration, err error) {
	h.Logger.Debug("stage finished", "stage", stage, "count", count, "duration", duration, "error", err)
}

func (h *LogHooks) OnMaterial(_ context.Context, material, outcome string) {
	h.Logger.Debug("material", "name", material, "outcome", outcome)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ ExportHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
)
