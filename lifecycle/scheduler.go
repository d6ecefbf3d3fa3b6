package lifecycle

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StatusScheduler periodically recomputes every course's status flags. It is
// owned by the process composition root and started/stopped explicitly; ticks
// never overlap (a tick still running when the next fires makes the next one
// a skip).
type StatusScheduler struct {
	service  *Service
	clock    Clock
	interval time.Duration
	cron     *cron.Cron
}

// NewStatusScheduler builds a scheduler around the lifecycle service. Interval
// values below one second are clamped to one second (cron's floor).
func NewStatusScheduler(service *Service, clock Clock, interval time.Duration) *StatusScheduler {
	if interval < time.Second {
		interval = time.Second
	}
	return &StatusScheduler{service: service, clock: clock, interval: interval}
}

// Start runs one immediate recompute (cold-start catch-up) and then enters the
// periodic loop.
func (s *StatusScheduler) Start() {
	s.tick()

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	c.Schedule(cron.Every(s.interval), cron.FuncJob(s.tick))
	c.Start()
	s.cron = c

	log.Printf("[STATUS-SCHEDULER] started, interval %s", s.interval)
}

// Stop halts the periodic loop and waits for a running tick to finish.
func (s *StatusScheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("[STATUS-SCHEDULER] stopped")
}

func (s *StatusScheduler) tick() {
	s.service.RecomputeStatuses(context.Background(), s.clock.Now())
}
