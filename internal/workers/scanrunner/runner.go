package scanrunner

import (
	"context"
	"log"
	"time"

	"seopilot/internal/ports"
)

// ScanProcessor performs the scan work for a claimed job.
type ScanProcessor interface {
	Process(ctx context.Context, job ports.ScanJob) error
}

// ConnectionToucher is the slice of the connection repository the refresh
// processor needs.
type ConnectionToucher interface {
	TouchLastSync(ctx context.Context, id string) error
}

// RefreshProcessor steps progress and bumps the connection's last_sync on
// completion. It stands in for a real crawl; the issue pipeline that would
// write fresh issues plugs in here.
type RefreshProcessor struct {
	Jobs      ports.JobRepository
	Conns     ConnectionToucher
	StepDelay time.Duration
}

func (p RefreshProcessor) Process(ctx context.Context, job ports.ScanJob) error {
	delay := p.StepDelay
	if delay <= 0 {
		delay = 150 * time.Millisecond
	}
	for progress := 0.0; progress < 1.0; progress += 0.25 {
		if err := p.Jobs.UpdateScanProgress(ctx, job.ScanID, progress); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	if err := p.Conns.TouchLastSync(ctx, job.ConnectionID); err != nil {
		return err
	}
	return p.Jobs.UpdateScanProgress(ctx, job.ScanID, 1.0)
}

// Runner claims queued scan jobs and drives them through a processor.
// Events and Cache are optional; when set, finished scans are announced on
// the bus and the connection's cached health is dropped.
type Runner struct {
	Jobs      ports.JobRepository
	Processor ScanProcessor
	Events    ports.EventPublisher
	Cache     ports.SnapshotCache
}

// Run starts worker goroutines that claim jobs and process them until ctx is
// cancelled.
func (r Runner) Run(ctx context.Context, concurrency int, pollInterval time.Duration) {
	if concurrency < 1 {
		return
	}
	jobsCh := make(chan ports.ScanJob, concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(jobsCh)
				return
			case <-ticker.C:
				for {
					job, found, err := r.Jobs.ClaimNext(ctx)
					if err != nil {
						log.Printf("job claim error: %v", err)
						break
					}
					if !found {
						break
					}
					jobsCh <- job
				}
			}
		}
	}()

	// workers
	for i := 0; i < concurrency; i++ {
		go func(idx int) {
			for job := range jobsCh {
				if err := r.finish(ctx, job, r.Processor.Process(ctx, job)); err != nil {
					log.Printf("worker %d: job %s: %v", idx, job.ID, err)
				}
			}
		}(i)
	}
}

// ProcessInline starts and processes a specific scan synchronously using the
// same lifecycle as the background workers.
func (r Runner) ProcessInline(ctx context.Context, scanID string) error {
	job, err := r.Jobs.StartJobForScan(ctx, scanID)
	if err != nil {
		return err
	}
	return r.finish(ctx, job, r.Processor.Process(ctx, job))
}

// finish records the processing outcome, invalidates cached health, and
// publishes the lifecycle event. The processor error is returned so workers
// can log it.
func (r Runner) finish(ctx context.Context, job ports.ScanJob, procErr error) error {
	ev := ports.ScanEvent{
		ScanID:       job.ScanID,
		ConnectionID: job.ConnectionID,
		FinishedAt:   time.Now().UTC(),
	}
	if procErr != nil {
		if err := r.Jobs.MarkFailed(ctx, job.ID, procErr.Error()); err != nil {
			log.Printf("mark failed for job %s: %v", job.ID, err)
		}
		ev.Status = "failed"
		ev.Reason = procErr.Error()
		if r.Events != nil {
			if err := r.Events.PublishScanFailed(ev); err != nil {
				log.Printf("publish scan failed event: %v", err)
			}
		}
		return procErr
	}
	if err := r.Jobs.MarkCompleted(ctx, job.ID); err != nil {
		return err
	}
	if r.Cache != nil {
		if err := r.Cache.Invalidate(ctx, job.ConnectionID); err != nil {
			log.Printf("cache invalidate for %s: %v", job.ConnectionID, err)
		}
	}
	ev.Status = "completed"
	if r.Events != nil {
		if err := r.Events.PublishScanCompleted(ev); err != nil {
			log.Printf("publish scan completed event: %v", err)
		}
	}
	return nil
}
