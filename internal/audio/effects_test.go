package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/waterrun/internal/session"
)

func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	return total
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := NewTone(440, 100*time.Millisecond, WaveSine, rate)

	got := drain(t, tone, 1<<20)
	if got != rate.N(100*time.Millisecond) {
		t.Errorf("tone streamed %d samples, expected %d", got, rate.N(100*time.Millisecond))
	}
	if tone.Err() != nil {
		t.Errorf("tone error = %v, expected nil", tone.Err())
	}
}

func TestSquareWaveValues(t *testing.T) {
	tone := NewTone(220, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	buf := make([][2]float64, 64)
	n, ok := tone.Stream(buf)
	if !ok || n != 64 {
		t.Fatalf("Stream = (%d, %v), expected (64, true)", n, ok)
	}
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Errorf("square sample %d = %f, expected +-1", i, v)
		}
	}
}

func TestEnvelopeShapesEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewTone(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 200)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("envelope streamed %d samples, expected 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, expected 0 (attack start)", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("middle sample = %f, expected 1 (sustain)", buf[50][0])
	}
	if buf[99][0] >= 0.2 {
		t.Errorf("last sample = %f, expected near 0 (release)", buf[99][0])
	}
}

func TestAmbientNeverEnds(t *testing.T) {
	a := NewAmbient(beep.SampleRate(8000))
	buf := make([][2]float64, 4000)
	for i := 0; i < 10; i++ {
		n, ok := a.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("ambient Stream = (%d, %v) on pass %d", n, ok, i)
		}
	}
}

func TestEveryCueIsFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	limit := rate.N(5 * time.Second)
	sounds := []session.Sound{
		session.SoundJump,
		session.SoundObstacleHit,
		session.SoundDelivery,
		session.SoundGameOver,
		session.SoundMilestoneDistance,
		session.SoundMilestoneDelivery,
	}
	for _, s := range sounds {
		t.Run(s.String(), func(t *testing.T) {
			n := drain(t, Cue(s, rate), limit+1)
			if n == 0 {
				t.Error("cue produced no samples")
			}
			if n > limit {
				t.Errorf("cue still streaming after %d samples", n)
			}
		})
	}
}
