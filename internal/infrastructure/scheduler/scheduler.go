// Package scheduler drives the sweep jobs on their cron periods. Each tick
// is an independent unit of work; overlapping runs of the same sweep are
// safe because dedup lives in the bookings' one-shot flags, not here.
package scheduler

import (
	"context"
	"time"

	"github.com/go-room-notify/internal/application/sweep"
	"github.com/go-room-notify/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// jobTimeout bounds one sweep tick.
const jobTimeout = 1 * time.Minute

type Scheduler struct {
	engine *cron.Cron
	sweeps sweep.Service
	cfg    *config.Config
	log    *logrus.Logger
}

func New(sweeps sweep.Service, cfg *config.Config, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		engine: cron.New(),
		sweeps: sweeps,
		cfg:    cfg,
		log:    log,
	}
}

// Start registers the four sweeps and starts the cron engine.
func (s *Scheduler) Start() error {
	jobs := []struct {
		name string
		spec string
		run  func(context.Context, time.Time) error
	}{
		{"upcoming", s.cfg.CronUpcoming, s.sweeps.NotifyUpcoming},
		{"starting", s.cfg.CronStarting, s.sweeps.NotifyStarting},
		{"ending", s.cfg.CronEnding, s.sweeps.NotifyEnding},
		{"auto_complete", s.cfg.CronAutoComplete, s.sweeps.AutoComplete},
	}
	for _, job := range jobs {
		job := job
		if _, err := s.engine.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := job.run(ctx, time.Now().UTC()); err != nil {
				s.log.WithError(err).Errorf("scheduler: %s sweep", job.name)
			}
		}); err != nil {
			return err
		}
		s.log.Infof("scheduler: registered %s sweep (%s)", job.name, job.spec)
	}
	s.engine.Start()
	return nil
}

// Stop halts scheduling and waits for in-flight sweeps to finish.
func (s *Scheduler) Stop() {
	<-s.engine.Stop().Done()
	s.log.Info("scheduler: stopped")
}
