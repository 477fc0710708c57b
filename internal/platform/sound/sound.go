// Package sound plays short sine tones on widget events. Audio is optional:
// if the speaker cannot be opened every cue is silently skipped.
package sound

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flappyshell/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one tone.
type Cue struct {
	Freq     float64
	Duration time.Duration
}

var (
	cueFlap  = Cue{Freq: 880, Duration: 40 * time.Millisecond}
	cueScore = Cue{Freq: 1320, Duration: 80 * time.Millisecond}
	cueCrash = Cue{Freq: 220, Duration: 300 * time.Millisecond}
)

// cueFor picks the tone for a tick. A crash wins over a score, which wins
// over a flap.
func cueFor(ev core.Events) (Cue, bool) {
	switch {
	case ev.Crashed:
		return cueCrash, true
	case ev.Scored:
		return cueScore, true
	case ev.Flapped:
		return cueFlap, true
	}
	return Cue{}, false
}

// Cues plays tones for step results.
type Cues struct {
	mu     sync.Mutex
	logger *log.Logger
	ready  bool
}

// New opens the speaker. Failure is logged and leaves the cues muted.
func New(logger *log.Logger) *Cues {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Cues{logger: logger}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, the game runs without sound
		logger.Warn("audio unavailable", "err", err)
		return c
	}
	c.ready = true
	return c
}

// Enabled reports whether the speaker is open.
func (c *Cues) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// OnStep plays the cue for a tick, if any. It fits loop.Config.OnStep.
func (c *Cues) OnStep(res core.StepResult) {
	cue, ok := cueFor(res.Events)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return
	}

	sine, err := generators.SineTone(sampleRate, cue.Freq)
	if err != nil {
		c.logger.Debug("tone", "freq", cue.Freq, "err", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(cue.Duration), sine))
}

// Close shuts the speaker down.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		speaker.Close()
		c.ready = false
	}
}
