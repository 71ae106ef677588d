package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Fetch re-fetches one snapshot and applies it to the view store. It
// runs unconditionally on every tick; the store's comparison suppresses
// redundant downstream work when nothing changed.
type Fetch func(ctx context.Context) error

// Config holds poller configuration.
type Config struct {
	Interval time.Duration
}

// DefaultConfig returns the default polling cadence.
func DefaultConfig() Config {
	return Config{Interval: 4 * time.Second}
}

// Poller is the safety net under the realtime channel: it re-fetches
// registered snapshots on a fixed interval to cover silently dropped
// connections and event types with no push. It runs concurrently with
// the channel by design.
type Poller struct {
	config Config
	clock  clockwork.Clock

	mu       sync.Mutex
	fetches  []namedFetch
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

type namedFetch struct {
	name string
	run  Fetch
}

// New creates a poller on the given clock.
func New(config Config, clock clockwork.Clock) *Poller {
	return &Poller{
		config:   config,
		clock:    clock,
		stopChan: make(chan struct{}),
	}
}

// Register adds a fetch to the polling set. Must be called before Start.
func (p *Poller) Register(name string, fetch Fetch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetches = append(p.fetches, namedFetch{name: name, run: fetch})
}

// Start begins polling. It polls once immediately, then on every tick.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("poller already running")
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx)

	log.Info().Dur("interval", p.config.Interval).Msg("poller started")
	return nil
}

// Stop halts polling and waits for the loop to exit.
func (p *Poller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return fmt.Errorf("poller not running")
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopChan)
	p.wg.Wait()

	log.Info().Msg("poller stopped")
	return nil
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := p.clock.NewTicker(p.config.Interval)
	defer ticker.Stop()

	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

// poll runs every registered fetch once. Errors are logged and never
// stop the loop; each fetch fails independently.
func (p *Poller) poll(ctx context.Context) {
	p.mu.Lock()
	fetches := make([]namedFetch, len(p.fetches))
	copy(fetches, p.fetches)
	p.mu.Unlock()

	for _, fetch := range fetches {
		if ctx.Err() != nil {
			return
		}
		if err := fetch.run(ctx); err != nil {
			log.Warn().Err(err).Str("fetch", fetch.name).Msg("poll fetch failed")
		}
	}
}
