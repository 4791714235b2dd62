package scheduler

import (
	"time"

	"github.com/rahat/tastybites-backend/internal/app/service"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DailySummaryScheduler rolls yesterday's orders and expenses into a
// daily summary row shortly after midnight.
type DailySummaryScheduler struct {
	cron          *cron.Cron
	reportService service.ReportService
}

// NewDailySummaryScheduler creates the scheduler, not yet started
func NewDailySummaryScheduler(reportService service.ReportService) *DailySummaryScheduler {
	return &DailySummaryScheduler{
		cron:          cron.New(),
		reportService: reportService,
	}
}

// Start registers the nightly job and starts the cron loop
func (s *DailySummaryScheduler) Start() error {
	// 00:10 local time, after the day has fully closed
	_, err := s.cron.AddFunc("10 0 * * *", s.rollUpYesterday)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("Daily summary scheduler started", map[string]interface{}{
		"schedule": "10 0 * * *",
	})
	return nil
}

// Stop stops the cron loop and waits for a running job to finish
func (s *DailySummaryScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Daily summary scheduler stopped")
}

// RunNow rolls up the given day immediately, used at startup to
// backfill yesterday if the process was down at night.
func (s *DailySummaryScheduler) RunNow(day time.Time) {
	if _, err := s.reportService.RollUpDay(day); err != nil {
		logger.Error("Daily summary roll-up failed", err, map[string]interface{}{
			"date": day.Format("2006-01-02"),
		})
	}
}

func (s *DailySummaryScheduler) rollUpYesterday() {
	yesterday := time.Now().AddDate(0, 0, -1)
	s.RunNow(yesterday)
}
