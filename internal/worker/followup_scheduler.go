package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"claim-service/internal/models"

	"github.com/robfig/cron/v3"
)

type PendingFollowUpLister interface {
	ListPendingProfessionalFollowUps(ctx context.Context, createdBefore time.Time) ([]models.DamageAssessment, error)
}

type FollowUpNotifier interface {
	NotifyProfessionalFollowUp(ctx context.Context, userID, assessmentID string, hoursPending int) error
}

// FollowUpScheduler reminds owners whose assessment needs a professional that
// nobody has been contacted yet.
type FollowUpScheduler struct {
	cron     *cron.Cron
	schedule string
	after    time.Duration
	lister   PendingFollowUpLister
	notifier FollowUpNotifier
	now      func() time.Time
}

func NewFollowUpScheduler(schedule string, afterHours int, lister PendingFollowUpLister, notifier FollowUpNotifier) *FollowUpScheduler {
	return &FollowUpScheduler{
		cron:     cron.New(),
		schedule: schedule,
		after:    time.Duration(afterHours) * time.Hour,
		lister:   lister,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *FollowUpScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := s.RunOnce(ctx)
		if err != nil {
			slog.Error("Professional follow-up run failed", "error", err)
			return
		}
		slog.Info("Professional follow-up run completed", "notified", sent)
	})
	if err != nil {
		return fmt.Errorf("invalid follow-up schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	slog.Info("Follow-up scheduler started", "schedule", s.schedule, "after", s.after)
	return nil
}

// Stop waits for a running job to finish.
func (s *FollowUpScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce sends one reminder per pending assessment and returns how many were sent.
// A failed notification is logged and does not stop the run.
func (s *FollowUpScheduler) RunOnce(ctx context.Context) (int, error) {
	now := s.now()
	pending, err := s.lister.ListPendingProfessionalFollowUps(ctx, now.Add(-s.after))
	if err != nil {
		return 0, fmt.Errorf("failed to list pending follow-ups: %w", err)
	}

	sent := 0
	for _, a := range pending {
		hours := int(now.Sub(a.CreatedAt).Hours())
		if err := s.notifier.NotifyProfessionalFollowUp(ctx, a.OwnerID, a.ID.String(), hours); err != nil {
			slog.Warn("Failed to send follow-up notification", "assessment_id", a.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
