package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

type ProposalExpirerService interface {
	ExpireOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// ProposalExpirer periodically expires reverse proposals left unanswered for longer than ttl.
type ProposalExpirer struct {
	proposals ProposalExpirerService
	ttl       time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewProposalExpirer(proposals ProposalExpirerService, ttl, interval time.Duration) *ProposalExpirer {
	return &ProposalExpirer{
		proposals: proposals,
		ttl:       ttl,
		interval:  interval,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (e *ProposalExpirer) Start(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	log.Infof("Proposal expirer cron started (ttl %s, every %s)", e.ttl, e.interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping proposal expirer...")
			return
		case <-ticker.C:
			e.sweep(ctx)
		}
	}
}

func (e *ProposalExpirer) sweep(ctx context.Context) int {
	cutoff := e.now().Add(-e.ttl)

	n, err := e.proposals.ExpireOlderThan(ctx, cutoff)
	if err != nil {
		log.Errorf("Expirer: failed to expire proposals sent before %s: %v", cutoff.Format(time.RFC3339), err)
		return 0
	}

	if n > 0 {
		log.Infof("Expirer: expired %d proposals sent before %s", n, cutoff.Format(time.RFC3339))
	}
	return n
}
