package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jmorel/hellohunt/internal/scraper"
)

// blockingSearcher parks inside Search until released, so a run can be
// held in flight while another tick fires
type blockingSearcher struct {
	started chan struct{}
	release chan struct{}
	calls   int32
}

func (b *blockingSearcher) Search(ctx context.Context, params scraper.SearchParams) ([]scraper.JobListing, error) {
	atomic.AddInt32(&b.calls, 1)
	close(b.started)
	<-b.release
	return nil, nil
}

func (b *blockingSearcher) FetchJobDetails(jobURL string) string { return "" }

func TestSchedulerSkipsOverlappingRuns(t *testing.T) {
	searcher := &blockingSearcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	w := NewWorker(searcher, nil, nil, nil, nil, false, 0)
	s := NewScheduler(w, scraper.SearchParams{JobTitle: "développeur"}, time.Hour)

	done := make(chan struct{})
	go func() {
		s.runOnce(context.Background())
		close(done)
	}()
	<-searcher.started

	// A tick firing mid-cycle returns without starting a second run
	s.runOnce(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(&searcher.calls))

	close(searcher.release)
	<-done
	assert.Equal(t, int32(1), atomic.LoadInt32(&searcher.calls))
}

func TestSchedulerSpec(t *testing.T) {
	w := NewWorker(&mockSearcher{}, nil, nil, nil, nil, false, 0)
	s := NewScheduler(w, scraper.SearchParams{JobTitle: "développeur"}, 6*time.Hour)

	assert.Equal(t, "@every 6h0m0s", s.spec)
}
