package postings

import (
	"context"
	"testing"
	"time"
)

func TestSweeperRunsImmediatelyAndStopsOnCancel(t *testing.T) {
	svc, _ := newTestService(t)

	p := validPosting()
	start := time.Now().UTC().Add(-48 * time.Hour)
	end := time.Now().UTC().Add(-24 * time.Hour)
	p.ApplicationStartDate = &start
	p.ApplicationEndDate = &end
	p.Status = StatusInProgress
	seeded, err := svc.Repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("seed posting: %v", err)
	}

	sweeper := &Sweeper{Svc: svc, Interval: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		got, err := svc.Repo.GetByID(context.Background(), seeded.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Status == StatusEvaluationComplete {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	got, err := svc.Repo.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusEvaluationComplete {
		t.Fatalf("status = %s, want EVALUATION_COMPLETE after first sweep", got.Status)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sweeper did not stop on cancel")
	}
}
