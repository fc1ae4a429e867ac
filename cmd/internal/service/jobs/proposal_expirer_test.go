package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeLedger struct {
	cutoffs []time.Time
	err     error
}

func (f *fakeLedger) ExpireOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func TestSweepUsesTTLCutoff(t *testing.T) {
	ledger := &fakeLedger{}
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	e := NewProposalExpirer(ledger, 72*time.Hour, time.Hour)
	e.now = func() time.Time { return now }

	assert.Equal(t, 2, e.sweep(context.Background()))
	assert.Equal(t, []time.Time{now.Add(-72 * time.Hour)}, ledger.cutoffs)
}

func TestSweepSwallowsFailures(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("storage unavailable")}

	e := NewProposalExpirer(ledger, time.Hour, time.Hour)
	assert.Zero(t, e.sweep(context.Background()))
}

func TestStartStopsOnCancel(t *testing.T) {
	ledger := &fakeLedger{}
	e := NewProposalExpirer(ledger, time.Hour, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expirer did not stop after cancel")
	}
}
