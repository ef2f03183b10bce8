// Package audio plays the looping campfire ambience.
package audio

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotFound is returned by Resolve when no sound file matches.
var ErrNotFound = errors.New("sound not found")

// Manager plays one looping track whose loudness follows a level.
type Manager struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	track  beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	volume *effects.Volume

	// 0.0 to 1.0
	masterVolume float64
	level        float64
}

// New creates a manager at the given master volume.
func New(masterVolume float64) *Manager {
	return &Manager{
		masterVolume: clamp(masterVolume, 0, 1),
		level:        1,
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.initialized = true
	return nil
}

// Close stops playback and releases the track.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
		m.initialized = false
	}
	if m.track != nil {
		m.track.Close()
		m.track = nil
	}
	m.ctrl = nil
	m.volume = nil
}

// Resolve finds name under dir as a .wav file.
func Resolve(dir, name string) (string, error) {
	path := filepath.Join(dir, name+".wav")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s in %s: %w", name, dir, ErrNotFound)
	}
	return path, nil
}

// PlayLoop decodes WAV data from r and loops it until Close. The manager
// takes ownership of r.
func (m *Manager) PlayLoop(r io.ReadCloser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		r.Close()
		return fmt.Errorf("audio not initialized")
	}

	streamer, format, err := wav.Decode(r)
	if err != nil {
		r.Close()
		return fmt.Errorf("decode wav: %w", err)
	}

	speaker.Clear()
	if m.track != nil {
		m.track.Close()
	}

	m.track = streamer
	m.ctrl = &beep.Ctrl{Streamer: newLoopStreamer(streamer, format.SampleRate, m.sampleRate)}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 10}
	m.applyVolume()

	speaker.Play(m.volume)
	return nil
}

// SetPaused pauses or resumes the loop.
func (m *Manager) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctrl == nil {
		return
	}
	speaker.Lock()
	m.ctrl.Paused = paused
	speaker.Unlock()
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.applyVolume()
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.masterVolume
}

// SetLevel scales the loop by level (0.0 to 1.0) on top of the master
// volume. The frame loop feeds it from the fire flicker.
func (m *Manager) SetLevel(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = clamp(level, 0, 1)
	m.applyVolume()
}

// Level returns the current level.
func (m *Manager) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *Manager) applyVolume() {
	if m.volume == nil {
		return
	}
	vol := m.masterVolume * m.level
	speaker.Lock()
	m.volume.Silent = vol <= 0
	// Gain is Base^Volume, so dB/20 with base 10 yields vol
	m.volume.Volume = volumeToDb(vol) / 20
	speaker.Unlock()
}

// FireLevel maps a fire light intensity in [lo, hi] to a loudness in
// [0.5, 1] so the crackle swells with the flames.
func FireLevel(intensity, lo, hi float32) float64 {
	if hi <= lo {
		return 1
	}
	t := clamp(float64((intensity-lo)/(hi-lo)), 0, 1)
	return 0.5 + 0.5*t
}

// volumeToDb converts a 0-1 volume to decibel scale.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * gomath.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Max(lo, gomath.Min(hi, v))
}

// loopStreamer restarts the underlying track whenever it runs out. A
// resampler latches its end-of-stream state, so it is rebuilt over the
// source after every rewind.
type loopStreamer struct {
	source   beep.StreamSeeker
	from, to beep.SampleRate
	out      beep.Streamer
}

func newLoopStreamer(source beep.StreamSeeker, from, to beep.SampleRate) *loopStreamer {
	l := &loopStreamer{source: source, from: from, to: to}
	l.out = l.wrap()
	return l
}

func (l *loopStreamer) wrap() beep.Streamer {
	if l.from == l.to {
		return l.source
	}
	return beep.Resample(4, l.from, l.to, l.source)
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	rewound := false
	for filled < len(samples) {
		n, ok := l.out.Stream(samples[filled:])
		filled += n
		if n > 0 {
			rewound = false
		}
		if ok && n > 0 {
			continue
		}
		// A pass straight after a rewind that yields nothing would spin forever.
		if rewound || l.source.Len() == 0 {
			return filled, filled > 0
		}
		if err := l.source.Seek(0); err != nil {
			return filled, filled > 0
		}
		l.out = l.wrap()
		rewound = true
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.out.Err()
}
