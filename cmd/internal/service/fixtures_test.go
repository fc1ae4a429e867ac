package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"eventmarket/cmd/internal/contract"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/recordstore"
	"eventmarket/cmd/internal/utils/validators"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *recordingDispatcher) Dispatch(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingDispatcher) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

type fixture struct {
	dir        string
	now        time.Time
	dispatcher *recordingDispatcher
	directory  *DefaultDirectoryService
	reverse    *DefaultReverseProposalService
	external   *DefaultExternalProposalService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		dir:        t.TempDir(),
		now:        epoch,
		dispatcher: &recordingDispatcher{},
	}

	validate := validators.New()
	notifications := NewNotificationService(f.dispatcher, "https://eventmarket.test/invite/")

	businesses := recordstore.NewCollection[entity.BusinessDirectoryEntry](
		recordstore.NewFileStore[entity.BusinessDirectoryEntry](f.dir, "businessDirectory"))
	reverse := recordstore.NewCollection[entity.ReverseProposal](
		recordstore.NewFileStore[entity.ReverseProposal](f.dir, "reverseProposals"))
	external := recordstore.NewCollection[entity.ExternalProposalRecord](
		recordstore.NewFileStore[entity.ExternalProposalRecord](f.dir, "externalProposals"))

	f.directory = NewDirectoryService(businesses, validate)
	f.directory.Clock = f.clock
	f.directory.NewID = sequence("biz")

	f.reverse = NewReverseProposalService(reverse, f.directory, notifications, DefaultPricing)
	f.reverse.Clock = f.clock
	f.reverse.NewID = sequence("rp")

	f.external = NewExternalProposalService(external, notifications, validate)
	f.external.Clock = f.clock
	f.external.NewID = sequence("xp")
	f.external.NewCode = codeSequence()

	return f
}

func (f *fixture) clock() time.Time {
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) addBusiness(t *testing.T, req contract.AddBusinessRequest) *entity.BusinessDirectoryEntry {
	t.Helper()
	b, err := f.directory.AddBusiness(context.Background(), "host-1", &req)
	require.NoError(t, err)
	return b
}

func sequence(prefix string) IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

func codeSequence() IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("CODE%012d", n), nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
