// pkg/pipeline/metrics.go
package pipeline

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// RunMetrics accumulates per-workshop normalization outcomes across the
// lifetime of the process.
type RunMetrics struct {
	mu             sync.Mutex
	logger         *zap.Logger
	StartTime      time.Time
	SuccessfulRuns int
	FailedRuns     int
	TotalRecords   int
	ErrorCounts    map[model.ErrorKind]int
	LastRun        time.Time
	LastWorkshop   string
}

// NewRunMetrics creates a metrics collector
func NewRunMetrics(logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		logger:      logger,
		StartTime:   time.Now(),
		ErrorCounts: make(map[model.ErrorKind]int),
	}
}

// RecordRun records the outcome of one normalization run
func (m *RunMetrics) RecordRun(workshopID string, records int, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRun = time.Now()
	m.LastWorkshop = workshopID

	if err != nil {
		m.FailedRuns++
		for _, kind := range []model.ErrorKind{
			model.KindConfiguration,
			model.KindSchemaResolution,
			model.KindEmptyInput,
			model.KindNoQuestionsFound,
			model.KindNoMatchingRows,
			model.KindTransport,
		} {
			if model.IsKind(err, kind) {
				m.ErrorCounts[kind]++
				break
			}
		}
		if m.logger != nil {
			m.logger.Warn("Run failed",
				zap.String("workshop", workshopID),
				zap.Duration("duration", duration),
				zap.Error(err))
		}
		return
	}

	m.SuccessfulRuns++
	m.TotalRecords += records
	if m.logger != nil {
		m.logger.Info("Run recorded",
			zap.String("workshop", workshopID),
			zap.Int("records", records),
			zap.Duration("duration", duration))
	}
}

// ErrorSummary returns error counts by kind
func (m *RunMetrics) ErrorSummary() map[model.ErrorKind]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	summary := make(map[model.ErrorKind]int, len(m.ErrorCounts))
	for kind, count := range m.ErrorCounts {
		summary[kind] = count
	}
	return summary
}
