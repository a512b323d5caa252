// Package audio plays short sound cues for game events.
package audio

import (
	"math"
	"sync"
	"time"

	"snake-sim/game"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(44100)

// Cues turns tick outcomes into sounds. Until Initialize succeeds it stays
// silent, so a machine without audio keeps playing.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	log         zerolog.Logger
}

func NewCues(log zerolog.Logger) *Cues {
	return &Cues{
		mixer: &beep.Mixer{},
		log:   log,
	}
}

// Initialize opens the speaker.
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close silences everything queued.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	c.initialized = false
}

// OnTick plays a chime for an apple and a buzz for a reset.
func (c *Cues) OnTick(res game.TickResult, _ game.Snapshot) {
	switch res.Outcome {
	case game.AteApple:
		c.play(beep.Take(sampleRate.N(120*time.Millisecond), NewChimeGenerator(sampleRate, 660)))
	case game.SelfCollision:
		c.play(beep.Take(sampleRate.N(250*time.Millisecond), NewBuzzGenerator(sampleRate, 110)))
	}
}

func (c *Cues) play(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
	c.log.Trace().Msg("cue queued")
}

// ChimeGenerator is a sine tone with an exponential decay.
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, freq: freq}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.3 * math.Exp(-t*20) * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// BuzzGenerator is a low tone with odd harmonics.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*3*t)
		sample += 0.06 * math.Sin(2*math.Pi*g.freq*5*t)

		// 20ms fade in
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.5

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
