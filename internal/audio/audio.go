// Package audio plays short synthesized sound effects.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Effect names a sound used by the games.
type Effect int

const (
	EffectJump Effect = iota
	EffectScore
	EffectPhase
	EffectGameOver
	EffectBounce
	EffectTick
	EffectHit
)

func (e Effect) String() string {
	switch e {
	case EffectJump:
		return "jump"
	case EffectScore:
		return "score"
	case EffectPhase:
		return "phase"
	case EffectGameOver:
		return "gameover"
	case EffectBounce:
		return "bounce"
	case EffectTick:
		return "tick"
	case EffectHit:
		return "hit"
	default:
		return "unknown"
	}
}

type effectTone struct {
	freq     float64
	duration time.Duration
}

var effectTones = map[Effect]effectTone{
	EffectJump:     {freq: 520, duration: 120 * time.Millisecond},
	EffectScore:    {freq: 880, duration: 200 * time.Millisecond},
	EffectPhase:    {freq: 180, duration: 300 * time.Millisecond},
	EffectGameOver: {freq: 110, duration: 600 * time.Millisecond},
	EffectBounce:   {freq: 220, duration: 80 * time.Millisecond},
	EffectTick:     {freq: 330, duration: 120 * time.Millisecond},
	EffectHit:      {freq: 440, duration: 80 * time.Millisecond},
}

// Player triggers sounds. Implementations must never block the frame loop.
type Player interface {
	// Play sounds a square tone at freq Hz. pan runs from -1 (left) to 1 (right).
	Play(freq float64, d time.Duration, pan float64)
	PlayEffect(e Effect)
}

// Silent discards every sound.
type Silent struct{}

func (Silent) Play(float64, time.Duration, float64) {}
func (Silent) PlayEffect(Effect)                    {}

// DefaultSampleRate is the output rate of the synthesizer.
const DefaultSampleRate = beep.SampleRate(44100)

// DefaultVolume is the master volume used by the command line.
const DefaultVolume = 0.2

// retryInterval throttles attempts to reopen a failed output device.
const retryInterval = 5 * time.Second

// Synth renders tones to the speaker.
type Synth struct {
	rate   beep.SampleRate
	volume float64
	logger *log.Logger

	// Replaced in tests.
	open func(beep.SampleRate, int) error
	out  func(...beep.Streamer)
	now  func() time.Time

	mu         sync.Mutex
	ready      bool
	lastFail   time.Time
	failLogged bool
}

// NewSynth creates a synthesizer. The output device is opened lazily on the
// first sound.
func NewSynth(volume float64, logger *log.Logger) *Synth {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Synth{
		rate:   DefaultSampleRate,
		volume: volume,
		logger: logger,
		open:   speaker.Init,
		out:    speaker.Play,
		now:    time.Now,
	}
}

// resume makes sure the device is open. It reports whether the sound may be
// played now; a device opened by this call only serves later sounds.
func (s *Synth) resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return true
	}
	if !s.lastFail.IsZero() && s.now().Sub(s.lastFail) < retryInterval {
		return false
	}

	if err := s.open(s.rate, s.rate.N(time.Second/10)); err != nil {
		s.lastFail = s.now()
		if !s.failLogged {
			s.logger.Warn("audio output unavailable", "error", err)
			s.failLogged = true
		}
		return false
	}
	s.ready = true
	s.logger.Debug("audio output opened", "rate", int(s.rate))
	return false
}

// Play sounds a square tone. It returns immediately.
func (s *Synth) Play(freq float64, d time.Duration, pan float64) {
	if freq <= 0 || d <= 0 || !s.resume() {
		return
	}
	s.out(s.streamer(freq, d, pan))
}

func (s *Synth) streamer(freq float64, d time.Duration, pan float64) beep.Streamer {
	return &effects.Pan{
		Streamer: newTone(freq, d, s.volume, s.rate),
		Pan:      max(-1, min(1, pan)),
	}
}

// PlayEffect sounds a named effect centered in the stereo field.
func (s *Synth) PlayEffect(e Effect) {
	t, ok := effectTones[e]
	if !ok {
		return
	}
	s.Play(t.freq, t.duration, 0)
}

// Close releases the output device.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		speaker.Close()
		s.ready = false
	}
}
