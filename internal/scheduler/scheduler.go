package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"TrendSentinel/internal/collector"
	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/watch"
)

// Notifier delivers formatted messages. A nil Notifier disables delivery.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Evaluation is the outcome of evaluating one watched symbol.
type Evaluation struct {
	Symbol string
	Report *model.TrendReport
	Change watch.Change
	Err    error
}

// Scheduler manages the cron evaluation of the watch list.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Watch     *watch.Manager
	Notifier  Notifier
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Retries   int
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, wm *watch.Manager, n Notifier, rec recorder.Recorder, m *metrics.Metrics) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Watch:     wm,
		Notifier:  n,
		Recorder:  rec,
		Metrics:   m,
		Retries:   3,
		Ctx:       ctx,
	}
}

// Register adds the watch list evaluation job.
func (s *Scheduler) Register(evaluateCron string) error {
	if _, err := s.Cron.AddFunc(evaluateCron, func() { s.EvaluateAll() }); err != nil {
		return fmt.Errorf("register evaluate task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunNow evaluates the watch list immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() []Evaluation {
	return s.EvaluateAll()
}

// EvaluateAll evaluates every watched symbol in turn. A failing symbol does
// not stop the others.
func (s *Scheduler) EvaluateAll() []Evaluation {
	symbols := s.Watch.Symbols()
	log.WithField("symbols", len(symbols)).Info("evaluating watch list")

	out := make([]Evaluation, 0, len(symbols))
	for _, sym := range symbols {
		if s.Ctx.Err() != nil {
			break
		}
		ev := s.evaluate(sym)
		if ev.Err != nil {
			log.WithField("symbol", sym).Errorf("evaluate: %v", ev.Err)
		}
		out = append(out, ev)
	}
	return out
}

func (s *Scheduler) evaluate(symbol string) Evaluation {
	ev := Evaluation{Symbol: symbol}

	report, err := s.Collector.Collect(collector.Query{Symbol: symbol})
	if err != nil {
		ev.Err = err
		return ev
	}
	ev.Report = report

	if err := s.Recorder.RecordTrend(report); err != nil {
		log.WithField("symbol", symbol).Errorf("record trend: %v", err)
	}

	change, err := s.Watch.Update(report)
	if err != nil {
		ev.Err = fmt.Errorf("update watch state: %w", err)
		return ev
	}
	ev.Change = change
	if !change.Changed {
		return ev
	}

	s.Metrics.SignalChanged()
	event := &recorder.SignalChangeEvent{
		Symbol:     change.Current.Symbol,
		FromSignal: change.Previous.Signal,
		ToSignal:   change.Current.Signal,
		FromTrend:  change.Previous.Trend,
		ToTrend:    change.Current.Trend,
		ADX:        change.Current.ADX,
		Price:      report.LastClose,
		AsOf:       report.AsOf,
	}
	if err := s.Recorder.RecordSignalChange(event); err != nil {
		log.WithField("symbol", symbol).Errorf("record signal change: %v", err)
	}
	s.trySend(notifier.FormatSignalChange(event))
	return ev
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return help
	}

	switch strings.ToLower(fields[0]) {
	case "/adx", "/dmi":
		if len(fields) < 2 {
			return "usage: /adx SYMBOL [PERIOD]"
		}
		q := collector.Query{Symbol: fields[1]}
		if len(fields) > 2 {
			p, err := strconv.Atoi(fields[2])
			if err != nil || p <= 0 {
				return fmt.Sprintf("invalid period %q", fields[2])
			}
			q.Period = p
		}
		report, err := s.Collector.Collect(q)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatTrendReport(report)

	case "/watch", "/list":
		state := s.Watch.GetState()
		return notifier.FormatWatchlist(&state)

	case "/add":
		if len(fields) < 2 {
			return "usage: /add SYMBOL"
		}
		added, err := s.Watch.Add(fields[1])
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		if !added {
			return fmt.Sprintf("%s is already watched", strings.ToUpper(fields[1]))
		}
		return fmt.Sprintf("✅ watching %s", strings.ToUpper(fields[1]))

	case "/remove":
		if len(fields) < 2 {
			return "usage: /remove SYMBOL"
		}
		if err := s.Watch.Remove(fields[1]); err != nil {
			if errors.Is(err, watch.ErrUnknownSymbol) {
				return fmt.Sprintf("%s is not watched", strings.ToUpper(fields[1]))
			}
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("✅ stopped watching %s", strings.ToUpper(fields[1]))

	case "/evaluate":
		evals := s.EvaluateAll()
		changed, failed := 0, 0
		for _, ev := range evals {
			if ev.Err != nil {
				failed++
			} else if ev.Change.Changed {
				changed++
			}
		}
		return fmt.Sprintf("evaluated %d symbols: %d signal changes, %d failures", len(evals), changed, failed)

	default:
		return help
	}
}

const help = "Available commands:\n" +
	"• /adx SYMBOL [PERIOD]\n" +
	"• /watch\n" +
	"• /add SYMBOL\n" +
	"• /remove SYMBOL\n" +
	"• /evaluate"

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	err := s.Notifier.SendWithRetry(s.Ctx, text, s.Retries)
	s.Metrics.Notified(err)
	if err != nil {
		log.Errorf("send notification: %v", err)
	}
}
