package evaluator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/shared/telemetry"
)

// Sender is the outbound surface the dispatcher delivers to.
type Sender interface {
	TeachCriteria(ctx context.Context, payload CriteriaPayload) error
	SubmitApplication(ctx context.Context, payload SubmissionPayload) error
}

// Notifier is what domain services see: non-blocking, fire-and-forget.
type Notifier interface {
	NotifyCriteria(payload CriteriaPayload) bool
	NotifySubmission(payload SubmissionPayload) bool
}

type task struct {
	id   string
	kind string
	run  func(ctx context.Context) error
}

// Dispatcher runs a bounded background queue of evaluator sends. Delivery is
// best-effort: a full queue drops the task, a failed send is logged and
// discarded. The request that enqueued the task has already returned success
// and must never observe a dispatch failure.
type Dispatcher struct {
	sender  Sender
	tasks   chan task
	timeout time.Duration

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher starts the worker pool.
func NewDispatcher(sender Sender, queueSize, workers int, timeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	if workers <= 0 {
		workers = 2
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	d := &Dispatcher{
		sender:  sender,
		tasks:   make(chan task, queueSize),
		timeout: timeout,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// NotifyCriteria enqueues a criteria payload. Returns false when dropped.
func (d *Dispatcher) NotifyCriteria(payload CriteriaPayload) bool {
	if d == nil {
		return false
	}
	return d.enqueue(task{
		id:   uuid.NewString(),
		kind: "criteria",
		run: func(ctx context.Context) error {
			return d.sender.TeachCriteria(ctx, payload)
		},
	}, map[string]any{"job_posting_id": payload.JobPostingID})
}

// NotifySubmission enqueues an application payload. Returns false when dropped.
func (d *Dispatcher) NotifySubmission(payload SubmissionPayload) bool {
	if d == nil {
		return false
	}
	return d.enqueue(task{
		id:   uuid.NewString(),
		kind: "submission",
		run: func(ctx context.Context) error {
			return d.sender.SubmitApplication(ctx, payload)
		},
	}, map[string]any{"application_id": payload.ApplicationID})
}

func (d *Dispatcher) enqueue(t task, fields map[string]any) bool {
	select {
	case d.tasks <- t:
		return true
	default:
		fields["task_id"] = t.id
		fields["kind"] = t.kind
		telemetry.Warn("evaluator.dispatch.dropped", fields)
		return false
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		start := time.Now()
		err := t.run(ctx)
		cancel()
		if err != nil {
			telemetry.Warn("evaluator.dispatch.failed", map[string]any{
				"task_id":     t.id,
				"kind":        t.kind,
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
				"error":       err.Error(),
			})
			continue
		}
		telemetry.Info("evaluator.dispatch.sent", map[string]any{
			"task_id":     t.id,
			"kind":        t.kind,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
		})
	}
}

// Close stops accepting tasks and waits for in-flight sends to finish.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}
