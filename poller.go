package coinledger

import (
	"fmt"
	"log"
	"slices"
	"sync"
	"time"
)

// PollerState is the lifecycle state of the background poller.
type PollerState int

const (
	// Running means ticks perform updates.
	Running PollerState = iota
	// Paused means the loop keeps ticking but updates are skipped.
	Paused
	// Stopped is terminal.
	Stopped
)

func (s PollerState) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	case Stopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// DefaultInterval is the default pause between update ticks.
const DefaultInterval = 60 * time.Second

// maxUpdateRetries bounds the number of failed fetches before the poller
// stops itself. The counter is never reset on success, so the budget is on
// total failures over the poller's lifetime.
const maxUpdateRetries = 3

// PollerStatus is a snapshot of the poller for status reporting.
type PollerStatus struct {
	State      PollerState
	LastUpdate time.Time // zero until the first successful update
	Interval   time.Duration
	Currency   string
	Errors     int
}

// Poller periodically fetches current prices for the tracked assets and
// appends them to the price ledger and, derived, to the bundle ledger.
//
// The poller never writes while paused or stopped, and its whole tick write
// runs inside the store's critical section, so foreground schema mutations
// cannot interleave with it. Pause and Resume remain available as the
// foreground-visible protocol around schema migrations.
type Poller struct {
	store  *Store
	quotes QuoteSource
	clock  func() time.Time

	mu         sync.Mutex
	state      PollerState
	ids        []string
	currency   string
	interval   time.Duration
	errCount   int
	lastUpdate time.Time

	stopc    chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewPoller constructs a poller in the RUNNING state, tracking the current
// identifier registry. It fails when the registry is empty: there is nothing
// to poll.
func NewPoller(store *Store, quotes QuoteSource, interval time.Duration, currency string) (*Poller, error) {
	ids, err := store.AssetIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no tracked assets to poll", ErrValidation)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		store:    store,
		quotes:   quotes,
		clock:    time.Now,
		state:    Running,
		ids:      ids,
		currency: currency,
		interval: interval,
		stopc:    make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the update loop.
func (p *Poller) Start() { go p.loop() }

func (p *Poller) loop() {
	defer close(p.done)
	timer := time.NewTimer(p.interval)
	defer timer.Stop()
	for {
		select {
		case <-p.stopc:
			return
		case <-timer.C:
		}
		if p.State() == Running {
			p.tick()
		}
		timer.Reset(p.interval)
	}
}

// tick performs one update: fetch quotes, append to both ledgers, record the
// update time. Failures are counted, never propagated.
func (p *Poller) tick() {
	p.mu.Lock()
	ids := slices.Clone(p.ids)
	currency := p.currency
	p.mu.Unlock()

	prices, err := p.quotes.Fetch(ids, currency)
	if err != nil {
		log.Printf("price update failed: %v", err)
		p.countError()
		return
	}

	sample := Sample{Timestamp: p.clock(), Prices: prices}
	if err := p.store.RecordSample(sample, ids); err != nil {
		log.Printf("recording price sample failed: %v", err)
		return
	}

	p.mu.Lock()
	p.lastUpdate = sample.Timestamp
	p.mu.Unlock()
}

// countError tracks failed update attempts and stops the poller once the
// retry budget is exceeded.
func (p *Poller) countError() {
	p.mu.Lock()
	p.errCount++
	exceeded := p.errCount > maxUpdateRetries
	p.mu.Unlock()
	if exceeded {
		log.Printf("too many failed updates, stopping the poller")
		p.Stop()
	}
}

// Pause prevents further ticks from updating the ledgers. No-op unless
// running.
func (p *Poller) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Running {
		p.state = Paused
	}
}

// Resume lets ticks update again. No-op unless paused.
func (p *Poller) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Paused {
		p.state = Running
	}
}

// Stop moves the poller to its terminal state and interrupts the interval
// sleep immediately. It is irreversible and safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.state = Stopped
	p.mu.Unlock()
	p.stopOnce.Do(func() { close(p.stopc) })
}

// Wait blocks until the update loop started by Start has exited.
func (p *Poller) Wait() { <-p.done }

// State returns the current lifecycle state.
func (p *Poller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastUpdate returns the wall-clock time of the last successful update, or
// the zero time if none happened yet.
func (p *Poller) LastUpdate() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastUpdate
}

// Status returns a snapshot for status reporting.
func (p *Poller) Status() PollerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PollerStatus{
		State:      p.state,
		LastUpdate: p.lastUpdate,
		Interval:   p.interval,
		Currency:   p.currency,
		Errors:     p.errCount,
	}
}

// SetAssetIDs replaces the tracked asset list without restarting the task,
// after a foreground add or remove completes.
func (p *Poller) SetAssetIDs(ids []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = slices.Clone(ids)
}

// SetCurrency replaces the fiat currency code without restarting the task,
// after a foreground currency change completes.
func (p *Poller) SetCurrency(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currency = code
}
