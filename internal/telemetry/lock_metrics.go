package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Mode unterscheidet geteilte und exklusive Sperranforderungen.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// Anforderungen, die länger als diese Schwelle warten, zählen als umkämpft.
const contentionFloor = 100 * time.Microsecond

// LockMetrics fasst Messwerte zu Sperranforderungen zusammen.
type LockMetrics struct {
	totalWait         atomic.Int64
	readAcquisitions  atomic.Uint64
	writeAcquisitions atomic.Uint64
	contended         atomic.Uint64
	batchDuration     atomic.Int64
	batchAttempts     atomic.Uint64
	batchFailures     atomic.Uint64
}

var defaultLockMetrics LockMetrics

// DefaultLockMetrics liefert die globalen Metriken.
func DefaultLockMetrics() *LockMetrics {
	return &defaultLockMetrics
}

// TraceAcquire startet eine Wartezeitmessung für eine Sperranforderung und
// liefert eine Abschlussfunktion, die Dauer und Modus meldet und die gemessene
// Wartezeit zurückgibt.
func TraceAcquire(mode Mode) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		defaultLockMetrics.totalWait.Add(elapsed.Nanoseconds())
		if mode == ModeWrite {
			defaultLockMetrics.writeAcquisitions.Add(1)
		} else {
			defaultLockMetrics.readAcquisitions.Add(1)
		}
		if elapsed > contentionFloor {
			defaultLockMetrics.contended.Add(1)
		}
		return elapsed
	}
}

// TraceBatch startet ein Mehrfachsperren-Span und liefert eine
// Abschlussfunktion, die Dauer und Fehlerzustand meldet.
func TraceBatch(ctx context.Context) (context.Context, func(error)) {
	start := time.Now()
	defaultLockMetrics.batchAttempts.Add(1)
	return ctx, func(err error) {
		elapsed := time.Since(start)
		defaultLockMetrics.batchDuration.Add(elapsed.Nanoseconds())
		if err != nil {
			defaultLockMetrics.batchFailures.Add(1)
		}
	}
}

// Snapshot gibt die gesammelten Werte zurück.
func (m *LockMetrics) Snapshot() (reads uint64, writes uint64, average time.Duration) {
	reads = m.readAcquisitions.Load()
	writes = m.writeAcquisitions.Load()
	total := m.totalWait.Load()
	acquisitions := reads + writes
	if acquisitions == 0 {
		return reads, writes, 0
	}
	average = time.Duration(total / int64(acquisitions))
	return reads, writes, average
}

// Contended liefert die Anzahl der Anforderungen oberhalb der Schwelle.
func (m *LockMetrics) Contended() uint64 {
	return m.contended.Load()
}

// BatchSnapshot gibt Versuche, Fehlschläge und mittlere Dauer der
// Mehrfachsperren zurück.
func (m *LockMetrics) BatchSnapshot() (attempts uint64, failures uint64, average time.Duration) {
	attempts = m.batchAttempts.Load()
	failures = m.batchFailures.Load()
	total := m.batchDuration.Load()
	if attempts == 0 {
		return attempts, failures, 0
	}
	average = time.Duration(total / int64(attempts))
	return attempts, failures, average
}

// Reset setzt alle Zähler zurück.
func (m *LockMetrics) Reset() {
	m.totalWait.Store(0)
	m.readAcquisitions.Store(0)
	m.writeAcquisitions.Store(0)
	m.contended.Store(0)
	m.batchDuration.Store(0)
	m.batchAttempts.Store(0)
	m.batchFailures.Store(0)
}

var (
	acquisitionsDesc = prometheus.NewDesc(
		"guarded_queue_lock_acquisitions_total",
		"Total number of lock acquisitions, partitioned by mode.",
		[]string{"mode"}, nil,
	)
	waitDesc = prometheus.NewDesc(
		"guarded_queue_lock_wait_seconds_total",
		"Cumulative time spent waiting for lock acquisitions.",
		nil, nil,
	)
	contendedDesc = prometheus.NewDesc(
		"guarded_queue_lock_contended_total",
		"Number of lock acquisitions that waited noticeably before succeeding.",
		nil, nil,
	)
	batchesDesc = prometheus.NewDesc(
		"guarded_queue_lock_batches_total",
		"Total number of multi-queue critical sections, partitioned by outcome.",
		[]string{"outcome"}, nil,
	)
)

var _ prometheus.Collector = (*LockMetrics)(nil)

// Describe implements prometheus.Collector.
func (m *LockMetrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- acquisitionsDesc
	ch <- waitDesc
	ch <- contendedDesc
	ch <- batchesDesc
}

// Collect implements prometheus.Collector.
func (m *LockMetrics) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		acquisitionsDesc, prometheus.CounterValue, float64(m.readAcquisitions.Load()), "read")
	ch <- prometheus.MustNewConstMetric(
		acquisitionsDesc, prometheus.CounterValue, float64(m.writeAcquisitions.Load()), "write")
	ch <- prometheus.MustNewConstMetric(
		waitDesc, prometheus.CounterValue, time.Duration(m.totalWait.Load()).Seconds())
	ch <- prometheus.MustNewConstMetric(
		contendedDesc, prometheus.CounterValue, float64(m.contended.Load()))
	attempts := m.batchAttempts.Load()
	failures := m.batchFailures.Load()
	ch <- prometheus.MustNewConstMetric(
		batchesDesc, prometheus.CounterValue, float64(attempts-failures), "ok")
	ch <- prometheus.MustNewConstMetric(
		batchesDesc, prometheus.CounterValue, float64(failures), "error")
}
