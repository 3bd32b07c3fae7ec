package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"claim-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingPool_RunsJobsAndSurvivesPanics(t *testing.T) {
	pool := NewWorkingPool(2, 10)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go pool.Start(ctx, &wg)

	done := make(chan int, 3)
	require.NoError(t, pool.SubmitJob(func(context.Context) error { panic("boom") }))
	require.NoError(t, pool.SubmitJob(func(context.Context) error { done <- 1; return nil }))
	require.NoError(t, pool.SubmitJob(func(context.Context) error { done <- 2; return errors.New("failed") }))
	require.NoError(t, pool.SubmitJob(func(context.Context) error { done <- 3; return nil }))

	got := map[int]bool{}
	for range 3 {
		select {
		case v := <-done:
			got[v] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, got)

	cancel()
	wg.Wait()

	assert.ErrorIs(t, pool.SubmitJob(func(context.Context) error { return nil }), ErrPoolClosed)
}

func TestWorkingPool_QueueFull(t *testing.T) {
	pool := NewWorkingPool(1, 1)
	noop := func(context.Context) error { return nil }

	require.NoError(t, pool.SubmitJob(noop))
	assert.ErrorIs(t, pool.SubmitJob(noop), ErrQueueFull)
}

type fakeLister struct {
	before time.Time
	items  []models.DamageAssessment
	err    error
}

func (f *fakeLister) ListPendingProfessionalFollowUps(_ context.Context, createdBefore time.Time) ([]models.DamageAssessment, error) {
	f.before = createdBefore
	return f.items, f.err
}

type fakeNotifier struct {
	users []string
	hours []int
	fail  map[string]bool
}

func (f *fakeNotifier) NotifyProfessionalFollowUp(_ context.Context, userID, _ string, hoursPending int) error {
	if f.fail[userID] {
		return errors.New("broker down")
	}
	f.users = append(f.users, userID)
	f.hours = append(f.hours, hoursPending)
	return nil
}

func TestFollowUpScheduler_RunOnce(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	lister := &fakeLister{items: []models.DamageAssessment{
		{ID: uuid.New(), OwnerID: "u1", CreatedAt: now.Add(-72 * time.Hour)},
		{ID: uuid.New(), OwnerID: "u2", CreatedAt: now.Add(-50 * time.Hour)},
		{ID: uuid.New(), OwnerID: "u3", CreatedAt: now.Add(-49 * time.Hour)},
	}}
	notifier := &fakeNotifier{fail: map[string]bool{"u2": true}}

	s := NewFollowUpScheduler("@daily", 48, lister, notifier)
	s.now = func() time.Time { return now }

	sent, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, now.Add(-48*time.Hour), lister.before)
	assert.Equal(t, []string{"u1", "u3"}, notifier.users)
	assert.Equal(t, []int{72, 49}, notifier.hours)
}

func TestFollowUpScheduler_ListError(t *testing.T) {
	s := NewFollowUpScheduler("@daily", 24, &fakeLister{err: errors.New("db down")}, &fakeNotifier{})
	_, err := s.RunOnce(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestFollowUpScheduler_InvalidSchedule(t *testing.T) {
	s := NewFollowUpScheduler("not a schedule", 24, &fakeLister{}, &fakeNotifier{})
	assert.Error(t, s.Start())
}
