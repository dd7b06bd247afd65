package scheduler

import (
	"errors"
	"testing"

	"github.com/Dan9191/finsight/internal/models"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeChecker struct {
	users  []models.User
	checks map[int64]models.HealthCheck
	failed map[int64]bool
	err    error
}

func (f *fakeChecker) ListUsers() ([]models.User, error) {
	return f.users, f.err
}

func (f *fakeChecker) HealthCheck(userID int64) (models.HealthCheck, error) {
	if f.failed[userID] {
		return models.HealthCheck{}, errors.New("store unavailable")
	}
	return f.checks[userID], nil
}

type recordingNotifier struct {
	sent    []int64
	failFor int64
}

func (r *recordingNotifier) SendDigest(user models.User, _ models.HealthCheck) error {
	if user.ID == r.failFor {
		return errors.New("smtp down")
	}
	r.sent = append(r.sent, user.ID)
	return nil
}

func TestRunDigestNotifiesUsersNeedingAttention(t *testing.T) {
	t.Parallel()

	checker := &fakeChecker{
		users: []models.User{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}},
		checks: map[int64]models.HealthCheck{
			1: {Emergencies: models.EmergencyReport{HasEmergency: true}},
			2: {},
			3: {Salary: &models.SalaryPrediction{IsDelayed: true, DaysLate: 3}},
			5: {Emergencies: models.EmergencyReport{HasEmergency: true}},
		},
		failed: map[int64]bool{4: true},
	}
	notifier := &recordingNotifier{failFor: 5}
	log, _ := test.NewNullLogger()

	s, err := NewScheduler("0 8 * * 1", checker, notifier, log)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if sent := s.RunDigest(); sent != 2 {
		t.Fatalf("expected 2 digests, got %d", sent)
	}
	if len(notifier.sent) != 2 || notifier.sent[0] != 1 || notifier.sent[1] != 3 {
		t.Fatalf("unexpected recipients %v", notifier.sent)
	}
}

func TestRunDigestListFailure(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	s, err := NewScheduler("@daily", &fakeChecker{err: errors.New("db down")}, &recordingNotifier{}, log)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if sent := s.RunDigest(); sent != 0 {
		t.Fatalf("expected no digests, got %d", sent)
	}
	if hook.LastEntry() == nil {
		t.Fatal("expected the failure to be logged")
	}
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	if _, err := NewScheduler("every tuesday", &fakeChecker{}, &recordingNotifier{}, log); err == nil {
		t.Fatal("expected an invalid schedule error")
	}
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	s, err := NewScheduler("@hourly", &fakeChecker{}, &recordingNotifier{}, log)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	<-s.Stop().Done()
}
