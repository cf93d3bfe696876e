package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	appreport "github.com/wims/backend/internal/application/report"
	"go.uber.org/zap"
)

// ErrSchedulerNotRunning is returned when an operation needs a started scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// tickInterval is how often the scheduler checks whether the daily run is due
const tickInterval = 1 * time.Minute

// TenantSource lists the tenants the daily aggregation must cover
type TenantSource interface {
	ListTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Config holds report scheduler settings
type Config struct {
	Enabled bool
	// Hour is the local hour (0-23) at which the daily run starts
	Hour int
	// JobTimeout bounds a single tenant aggregation
	JobTimeout time.Duration
}

// DefaultConfig returns the default scheduler settings, a daily run at 02:00
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Hour:       2,
		JobTimeout: 10 * time.Minute,
	}
}

// ReportScheduler runs the profit and loss aggregation once a day for
// every tenant. Reruns are safe because the aggregation overwrites the
// rows for the day it covers.
type ReportScheduler struct {
	config  Config
	reports *appreport.ProfitLossService
	tenants TenantSource
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewReportScheduler creates a new ReportScheduler
func NewReportScheduler(config Config, reports *appreport.ProfitLossService, tenants TenantSource, logger *zap.Logger) *ReportScheduler {
	return &ReportScheduler{
		config:  config,
		reports: reports,
		tenants: tenants,
		logger:  logger,
	}
}

// Start starts the scheduler loop
func (s *ReportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Report scheduler started",
		zap.Int("hour", s.config.Hour),
		zap.Timep("next_run_at", s.nextRunAt),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight run to finish
func (s *ReportScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Report scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Report scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *ReportScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runDailyAggregation(ctx)
				s.calculateNextRunTime()
			}
		}
	}
}

func (s *ReportScheduler) shouldRun(now time.Time) bool {
	return now.Hour() == s.config.Hour && now.Minute() == 0
}

func (s *ReportScheduler) calculateNextRunTime() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.config.Hour, 0, 0, 0, now.Location())
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	s.mu.Lock()
	s.nextRunAt = &next
	s.mu.Unlock()
}

// runDailyAggregation aggregates yesterday's movements for every tenant
func (s *ReportScheduler) runDailyAggregation(ctx context.Context) {
	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	yesterday := now.AddDate(0, 0, -1)

	tenantIDs, err := s.tenants.ListTenantIDs(ctx)
	if err != nil {
		s.logger.Error("Failed to list tenants for report aggregation", zap.Error(err))
		return
	}

	s.logger.Info("Starting daily report aggregation",
		zap.Int("tenant_count", len(tenantIDs)),
		zap.String("date", yesterday.Format("2006-01-02")),
	)

	for _, tenantID := range tenantIDs {
		jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
		result, err := s.reports.Generate(jobCtx, tenantID, yesterday)
		cancel()

		if err != nil {
			s.logger.Error("Report aggregation failed for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}

		s.logger.Info("Report aggregation completed for tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Int("items_covered", result.ItemsCovered),
		)
	}
}

// TriggerManualRun starts an aggregation run outside the daily schedule.
// The run uses a background context so it survives the caller's request.
func (s *ReportScheduler) TriggerManualRun() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	go s.runDailyAggregation(context.Background())
	return nil
}

// NextRunAt returns when the next scheduled run will occur
func (s *ReportScheduler) NextRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt
}

// LastRunAt returns when the last run occurred
func (s *ReportScheduler) LastRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}
