package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/waterrun/internal/session"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed-length tone whose frequency slides linearly
// from `from` to `to`.
type oscillator struct {
	from, to float64
	phase    float64
	pos      int
	length   int
	wave     Wave
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewTone returns a constant-pitch tone of length d.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep returns a tone gliding from one frequency to another over d.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		from:   from,
		to:     to,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		noise:  rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.noise.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		progress := float64(o.pos) / float64(o.length)
		freq := o.from + (o.to-o.from)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over the final release.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

// NewEnvelope shapes s with a linear attack and release. Samples past d
// are cut.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain = math.Min(gain, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// ambient is an endless soft two-note pulse used under a run.
type ambient struct {
	rate beep.SampleRate
	pos  int
	beat int
}

// NewAmbient returns the endless background pulse.
func NewAmbient(rate beep.SampleRate) beep.Streamer {
	return &ambient{rate: rate, beat: rate.N(400 * time.Millisecond)}
}

var ambientNotes = [...]float64{110, 110, 146.83, 130.81}

func (a *ambient) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		step := (a.pos / a.beat) % len(ambientNotes)
		inBeat := float64(a.pos%a.beat) / float64(a.beat)
		t := float64(a.pos) / float64(a.rate)

		// Plucked decay per beat.
		gain := 0.12 * math.Exp(-5*inBeat)
		v := gain * math.Sin(2*math.Pi*ambientNotes[step]*t)

		samples[i][0] = v
		samples[i][1] = v
		a.pos++
	}
	return len(samples), true
}

func (a *ambient) Err() error { return nil }

// newVolume scales s linearly. Zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewTone(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Cue builds the streamer for a sound. Every cue is finite.
func Cue(s session.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case session.SoundJump:
		d := 120 * time.Millisecond
		return newVolume(NewEnvelope(NewSweep(320, 720, d, WaveSquare, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate), 0.25)
	case session.SoundObstacleHit:
		d := 220 * time.Millisecond
		thud := NewEnvelope(NewSweep(140, 70, d, WaveSaw, rate), d, 2*time.Millisecond, 150*time.Millisecond, rate)
		crack := NewEnvelope(NewTone(0, 60*time.Millisecond, WaveNoise, rate), 60*time.Millisecond, time.Millisecond, 40*time.Millisecond, rate)
		return newVolume(beep.Mix(newVolume(thud, 0.7), newVolume(crack, 0.3)), 0.4)
	case session.SoundDelivery:
		return newVolume(beep.Seq(
			note(987.77, 80*time.Millisecond, WaveSquare, rate),
			note(1318.51, 220*time.Millisecond, WaveSquare, rate),
		), 0.2)
	case session.SoundGameOver:
		return newVolume(beep.Seq(
			note(392, 200*time.Millisecond, WaveSaw, rate),
			note(311.13, 200*time.Millisecond, WaveSaw, rate),
			note(261.63, 450*time.Millisecond, WaveSaw, rate),
		), 0.3)
	case session.SoundMilestoneDistance:
		return newVolume(beep.Seq(
			note(523.25, 90*time.Millisecond, WaveSine, rate),
			note(659.25, 90*time.Millisecond, WaveSine, rate),
			note(783.99, 180*time.Millisecond, WaveSine, rate),
		), 0.35)
	case session.SoundMilestoneDelivery:
		d := 400 * time.Millisecond
		bell := beep.Mix(
			newVolume(NewEnvelope(NewTone(1046.5, d, WaveSine, rate), d, 2*time.Millisecond, 350*time.Millisecond, rate), 0.7),
			newVolume(NewEnvelope(NewTone(2093, d, WaveSine, rate), d, 2*time.Millisecond, 200*time.Millisecond, rate), 0.3),
		)
		return newVolume(bell, 0.35)
	}
	return beep.Silence(0)
}
