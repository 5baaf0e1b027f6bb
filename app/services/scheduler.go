package services

import (
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper drops expired entries and reports how many went.
type Sweeper interface {
	Sweep() int
}

// Job is one periodic sweep.
type Job struct {
	Name    string
	Spec    string
	Sweeper Sweeper
}

// StartScheduler runs the jobs on their cron specs. Stop the returned cron
// on shutdown.
func StartScheduler(log *zap.Logger, jobs ...Job) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	for _, j := range jobs {
		if _, err := c.AddFunc(j.Spec, func() { run(log, j) }); err != nil {
			return nil, errors.Wrapf(err, "scheduler: add %s", j.Name)
		}
	}
	c.Start()
	log.Info("scheduler started", zap.Int("jobs", len(jobs)))
	return c, nil
}

func run(log *zap.Logger, j Job) int {
	n := j.Sweeper.Sweep()
	if n > 0 {
		log.Debug("swept", zap.String("job", j.Name), zap.Int("dropped", n))
	}
	return n
}
