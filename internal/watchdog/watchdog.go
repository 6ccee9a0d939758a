package watchdog

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/sirupsen/logrus"
)

// Probe reports system memory usage as a percentage.
type Probe func(ctx context.Context) (float64, error)

const defaultInterval = time.Second

// VirtualMemoryPercent reads the share of system memory that is not
// available, (total-available)/total. gopsutil's UsedPercent leaves out
// buffers and page cache, so it reads far lower under the same load.
func VirtualMemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return unavailablePercent(vm.Total, vm.Available)
}

func unavailablePercent(total, available uint64) (float64, error) {
	if total == 0 {
		return 0, errors.New("total memory reported as zero")
	}
	if available > total {
		available = total
	}
	return float64(total-available) / float64(total) * 100, nil
}

// Watchdog stops the process when memory usage reaches a threshold. On a
// breach it cancels the run so in-flight requests abort, then exits with
// status 1 if the process is still alive after the grace period.
type Watchdog struct {
	threshold float64
	interval  time.Duration
	grace     time.Duration
	probe     Probe
	exit      func(code int)
	log       *logrus.Entry
	breached  atomic.Bool
}

type Option func(*Watchdog)

func WithProbe(probe Probe) Option {
	return func(w *Watchdog) { w.probe = probe }
}

func WithExit(exit func(code int)) Option {
	return func(w *Watchdog) { w.exit = exit }
}

func WithLogger(log *logrus.Entry) Option {
	return func(w *Watchdog) {
		if log != nil {
			w.log = log
		}
	}
}

func New(threshold float64, interval, grace time.Duration, opts ...Option) *Watchdog {
	w := &Watchdog{
		threshold: threshold,
		interval:  interval,
		grace:     grace,
		probe:     VirtualMemoryPercent,
		exit:      os.Exit,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.WithField("component", "watchdog")

	if w.interval <= 0 {
		w.log.Warnf("Invalid RAM check interval %s, using %s", interval, defaultInterval)
		w.interval = defaultInterval
	}
	return w
}

// Run polls until ctx is done or the threshold is reached. The first check
// happens immediately.
func (w *Watchdog) Run(ctx context.Context, cancelRun context.CancelFunc) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if w.check(ctx) {
			w.trip(cancelRun)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Watchdog) check(ctx context.Context) bool {
	percent, err := w.probe(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.WithError(err).Debug("Failed to read memory usage")
		}
		return false
	}
	return percent >= w.threshold
}

func (w *Watchdog) trip(cancelRun context.CancelFunc) {
	w.breached.Store(true)
	w.log.Errorf("Critical: RAM usage exceeded %.0f%%. Terminating.", w.threshold)
	cancelRun()

	time.Sleep(w.grace)
	w.exit(1)
}

// Breached reports whether the threshold has been reached.
func (w *Watchdog) Breached() bool {
	return w.breached.Load()
}
