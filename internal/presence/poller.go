package presence

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultInterval is the delay between polls.
const DefaultInterval = 5 * time.Second

// Fetcher returns the current raw activities.
type Fetcher interface {
	Fetch(ctx context.Context) ([]RawActivity, error)
}

// Status describes the most recent poll.
type Status struct {
	LastSuccess time.Time `json:"last_success"`
	LastError   string    `json:"last_error,omitempty"`
	Activities  int       `json:"activities"`
}

// Poller fetches presence once on Start and then every interval. A tick is
// skipped while the previous one is still in flight. Failed ticks keep the
// previously fetched activities.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	timeout  time.Duration

	mu         sync.RWMutex
	activities []Activity
	status     Status
	stopped    bool

	cron     *cron.Cron
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPoller returns a poller. Each fetch gets four fifths of the interval so a
// slow response ends before the next tick is due.
func NewPoller(f Fetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetcher:    f,
		interval:   interval,
		timeout:    interval * 4 / 5,
		activities: []Activity{},
	}
}

// fixedDelay fires every d after the time it is asked about, without the
// whole-second rounding of cron.Every.
type fixedDelay time.Duration

func (d fixedDelay) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}

func (p *Poller) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)

	logger := cron.PrintfLogger(log.New(log.Writer(), "[presence] ", log.LstdFlags))
	job := cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).
		Then(cron.FuncJob(func() { p.tick(runCtx) }))

	c := cron.New(cron.WithLogger(logger))
	c.Schedule(fixedDelay(p.interval), job)

	p.mu.Lock()
	p.cancel = cancel
	p.cron = c
	p.mu.Unlock()

	// first poll right away; the schedule counts from here
	c.Start()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		job.Run()
	}()

	go func() {
		<-runCtx.Done()
		p.Stop()
	}()

	log.Printf("[presence] polling every %s", p.interval)
}

// Stop cancels any in-flight fetch and waits for it to return.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		cancel, c := p.cancel, p.cron
		p.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if c != nil {
			<-c.Stop().Done()
		}
		p.wg.Wait()
		log.Printf("[presence] stopped")
	})
}

func (p *Poller) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raws, err := p.fetcher.Fetch(fetchCtx)
	if err != nil {
		log.Printf("[presence] failed to fetch presence: %v", err)
		p.mu.Lock()
		p.status.LastError = err.Error()
		p.mu.Unlock()
		return
	}

	activities := NormalizeAll(raws)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || ctx.Err() != nil {
		return
	}
	p.activities = activities
	p.status = Status{LastSuccess: time.Now(), Activities: len(activities)}
}

// Activities returns a copy of the latest normalized list.
func (p *Poller) Activities() []Activity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Activity, len(p.activities))
	copy(out, p.activities)
	return out
}

func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}
