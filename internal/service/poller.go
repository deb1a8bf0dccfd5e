package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Cycler is one unit of poll work. Both the order monitor and the
// message responder implement it.
type Cycler interface {
	ProcessCycle(ctx context.Context) error
}

// PollLoop runs a Cycler on a fixed interval
type PollLoop struct {
	name     string
	cycler   Cycler
	interval time.Duration
	log      zerolog.Logger

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewPollLoop creates a new poll loop
func NewPollLoop(name string, cycler Cycler, interval time.Duration, log zerolog.Logger) *PollLoop {
	return &PollLoop{
		name:     name,
		cycler:   cycler,
		interval: interval,
		log:      log.With().Str("loop", name).Logger(),
		stopCh:   make(chan struct{}),
	}
}

// Start starts the poll loop
func (l *PollLoop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.wg.Add(1)
	go l.loop()
	l.log.Info().Dur("interval", l.interval).Msg("poll loop started")
}

// Stop stops the poll loop and waits for the in-flight cycle
func (l *PollLoop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	close(l.stopCh)
	l.wg.Wait()
	l.log.Info().Msg("poll loop stopped")
}

func (l *PollLoop) loop() {
	defer l.wg.Done()

	// Initial run
	l.runCycle()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.runCycle()
		case <-l.stopCh:
			return
		}
	}
}

// runCycle runs one cycle. Cycles never overlap: the loop goroutine is
// the only caller, so a slow upstream just delays the next tick.
func (l *PollLoop) runCycle() {
	start := time.Now()
	if err := l.cycler.ProcessCycle(context.Background()); err != nil {
		l.log.Error().Err(err).Dur("took", time.Since(start)).Msg("cycle failed")
		return
	}
	l.log.Debug().Dur("took", time.Since(start)).Msg("cycle finished")
}
