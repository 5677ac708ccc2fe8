package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Envelope stage lengths as fractions of the requested duration. The tone
// ends after the release stage, so it lasts 0.61 of the requested duration.
const (
	attackFrac   = 0.01
	decayFrac    = 0.1
	sustainFrac  = 0.4
	releaseFrac  = 0.1
	sustainLevel = 0.8
)

// tone is a square oscillator shaped by an attack/decay/sustain/release
// envelope.
type tone struct {
	freq   float64
	volume float64
	rate   beep.SampleRate

	phase float64
	pos   int
	total int

	attackEnd, decayEnd, sustainEnd int
}

func newTone(freq float64, d time.Duration, volume float64, rate beep.SampleRate) *tone {
	n := rate.N(d)
	attack := int(float64(n) * attackFrac)
	decay := int(float64(n) * decayFrac)
	sustain := int(float64(n) * sustainFrac)
	release := int(float64(n) * releaseFrac)
	return &tone{
		freq:       freq,
		volume:     volume,
		rate:       rate,
		total:      attack + decay + sustain + release,
		attackEnd:  attack,
		decayEnd:   attack + decay,
		sustainEnd: attack + decay + sustain,
	}
}

// level returns the envelope gain at sample i.
func (t *tone) level(i int) float64 {
	switch {
	case i < t.attackEnd:
		return t.volume * float64(i) / float64(t.attackEnd)
	case i < t.decayEnd:
		p := float64(i-t.attackEnd) / float64(t.decayEnd-t.attackEnd)
		return t.volume * (1 - (1-sustainLevel)*p)
	case i < t.sustainEnd:
		return t.volume * sustainLevel
	case i < t.total:
		p := float64(i-t.sustainEnd) / float64(t.total-t.sustainEnd)
		return t.volume * sustainLevel * (1 - p)
	default:
		return 0
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		val := -1.0
		if t.phase < 0.5 {
			val = 1.0
		}
		val *= t.level(t.pos)

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= float64(int(t.phase))
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
