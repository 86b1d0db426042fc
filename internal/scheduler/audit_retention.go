package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var ErrEnqueuerMissing = errors.New("audit retention scheduler: no task queue")

// Enqueuer puts an audit retention run on the task queue.
// tasks.Client satisfies it.
type Enqueuer interface {
	EnqueueAuditCleanup(ctx context.Context, retentionDays int) (string, error)
}

// AuditRetentionScheduler periodically enqueues audit cleanup tasks.
// The cleanup itself runs on the task queue, so a slow delete never blocks
// the cron goroutine.
type AuditRetentionScheduler struct {
	queue         Enqueuer
	schedule      string
	retentionDays int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

var standardParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := standardParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// NewAuditRetentionScheduler creates a new scheduler instance.
func NewAuditRetentionScheduler(queue Enqueuer, schedule string, retentionDays int) *AuditRetentionScheduler {
	return &AuditRetentionScheduler{
		queue:         queue,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(standardParser)),
	}
}

// Start registers the cron job and begins the scheduler. It stops on its
// own when ctx is cancelled.
func (s *AuditRetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.queue == nil {
		return ErrEnqueuerMissing
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			log.Printf("Audit retention scheduler: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit retention job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit retention scheduler: started with schedule '%s', keeping %d days. Next run: %v",
		s.schedule, s.retentionDays, s.cron.Entry(entryID).Next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *AuditRetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	stopped := s.cron.Stop()
	<-stopped.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("Audit retention scheduler: stopped")
}

// RunNow enqueues a cleanup immediately and returns the task ID.
func (s *AuditRetentionScheduler) RunNow(ctx context.Context) (string, error) {
	if s.queue == nil {
		return "", ErrEnqueuerMissing
	}
	id, err := s.queue.EnqueueAuditCleanup(ctx, s.retentionDays)
	if err != nil {
		return "", err
	}
	log.Printf("Audit retention scheduler: enqueued cleanup task %s", id)
	return id, nil
}

// IsRunning returns whether the scheduler is active.
func (s *AuditRetentionScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next cleanup will be enqueued.
func (s *AuditRetentionScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}
