/*-------------------------------------------------------------------------
 *
 * scheduler.go
 *    Background scheduler for the approval reminder/escalation sweep
 *
 * Runs the lifecycle sweep on a fixed interval with graceful shutdown
 * support. One sweep failure is logged and the next tick runs anyway.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/jobs/scheduler.go
 *
 *-------------------------------------------------------------------------
 */

package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/teamai-botivate/HR-Support/internal/approvals"
	"github.com/teamai-botivate/HR-Support/internal/metrics"
)

type Scheduler struct {
	manager  *approvals.Manager
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

/* NewScheduler creates a sweep scheduler. The interval defaults to one
 * hour when unset. */
func NewScheduler(manager *approvals.Manager, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		manager:  manager,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

/* Start launches the sweep loop. An immediate sweep runs at startup so
 * requests that aged past a threshold while the server was down are
 * picked up without waiting a full interval. */
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Scheduler) sweep() {
	result, err := s.manager.Sweep(s.ctx, time.Now().UTC())
	if err != nil {
		metrics.ErrorWithContext(s.ctx, "scheduled sweep failed", err, nil)
		return
	}
	if result.RemindersSent > 0 || result.Escalations > 0 || result.Failures > 0 {
		metrics.InfoWithContext(s.ctx, "scheduled sweep applied transitions", map[string]interface{}{
			"reminders": result.RemindersSent,
			"escalated": result.Escalations,
			"failures":  result.Failures,
		})
	}
}

/* Stop cancels the loop and waits for an in-flight sweep to finish */
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
