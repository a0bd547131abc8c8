package recorder

import "TrendSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTrend(_ *model.TrendReport) error           { return nil }
func (n *NoopRecorder) RecordSignalChange(_ *SignalChangeEvent) error    { return nil }
func (n *NoopRecorder) RecentTrends(_ string, _ int) ([]TrendRow, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                     { return nil }
