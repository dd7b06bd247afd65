// Package scheduler runs the periodic health digest.
package scheduler

import (
	"context"
	"fmt"

	"github.com/Dan9191/finsight/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// HealthChecker lists users and evaluates their finances
type HealthChecker interface {
	ListUsers() ([]models.User, error)
	HealthCheck(userID int64) (models.HealthCheck, error)
}

// Notifier delivers a digest to a user
type Notifier interface {
	SendDigest(user models.User, check models.HealthCheck) error
}

// Scheduler e-mails users whose finances need attention on a cron schedule
type Scheduler struct {
	cron     *cron.Cron
	checker  HealthChecker
	notifier Notifier
	log      *logrus.Logger
}

// NewScheduler registers the digest job under the given cron spec
func NewScheduler(spec string, checker HealthChecker, notifier Notifier, log *logrus.Logger) (*Scheduler, error) {
	logger := cron.PrintfLogger(log)
	s := &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		checker:  checker,
		notifier: notifier,
		log:      log,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunDigest() }); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Digest scheduler started")
}

// Stop halts the scheduler; the returned context is done once a running digest finishes
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunDigest checks every user and notifies those who need attention. A
// failure for one user is logged and does not stop the run.
func (s *Scheduler) RunDigest() int {
	users, err := s.checker.ListUsers()
	if err != nil {
		s.log.Errorf("Digest aborted, cannot list users: %v", err)
		return 0
	}

	var sent int
	for _, u := range users {
		entry := s.log.WithField("user_id", u.ID)
		check, err := s.checker.HealthCheck(u.ID)
		if err != nil {
			entry.Warnf("Health check failed: %v", err)
			continue
		}
		if !check.NeedsAttention() {
			continue
		}
		if err := s.notifier.SendDigest(u, check); err != nil {
			entry.Warnf("Digest not delivered: %v", err)
			continue
		}
		sent++
	}

	s.log.Infof("Digest run finished: %d of %d users notified", sent, len(users))
	return sent
}
