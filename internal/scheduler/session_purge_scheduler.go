package scheduler

import (
	"time"

	"github.com/jwtpizza/pizza-service/internal/metrics"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SessionPurger removes session markers created before a cutoff.
type SessionPurger interface {
	PurgeSessions(before time.Time) (int64, error)
}

// SessionPurgeScheduler 만료된 세션 정리 스케줄러
type SessionPurgeScheduler struct {
	cron     *cron.Cron
	purger   SessionPurger
	schedule string
	maxAge   time.Duration
	now      func() time.Time
}

// NewSessionPurgeScheduler purges sessions older than maxAge on schedule (standard cron syntax or descriptors such as "@hourly").
func NewSessionPurgeScheduler(purger SessionPurger, schedule string, maxAge time.Duration) *SessionPurgeScheduler {
	return &SessionPurgeScheduler{
		cron:     cron.New(),
		purger:   purger,
		schedule: schedule,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// Start 스케줄러 시작
func (s *SessionPurgeScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		logger.Error("Failed to add cron job for session purge", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Session purge scheduler started", map[string]interface{}{
		"schedule": s.schedule,
		"max_age":  s.maxAge.String(),
	})
	return nil
}

// RunOnce purges expired sessions immediately.
func (s *SessionPurgeScheduler) RunOnce() {
	cutoff := s.now().Add(-s.maxAge)
	purged, err := s.purger.PurgeSessions(cutoff)
	if err != nil {
		logger.Error("Failed to purge expired sessions", err)
		return
	}

	metrics.SessionsPurged.Set(float64(purged))
	logger.Info("Expired sessions purged", map[string]interface{}{
		"purged": purged,
		"cutoff": cutoff.Format(time.RFC3339),
	})
}

// Stop 스케줄러 중지
func (s *SessionPurgeScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Session purge scheduler stopped")
}
