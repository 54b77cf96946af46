// Package audio plays the game's feedback cues on the system speaker.
// Cues are decoded or synthesized once into memory buffers; playing one
// only hands a fresh streamer over the buffer to the speaker mixer.
package audio

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"SchulteTable/config"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/pkg/errors"
)

// Format is the speaker format every cue is stored in.
var Format = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

// Note is one step of a synthesized cue.
type Note struct {
	Freq     float64
	Duration time.Duration
}

var (
	correctNotes = []Note{{880, 70 * time.Millisecond}, {1320, 110 * time.Millisecond}}
	wrongNotes   = []Note{{233, 140 * time.Millisecond}, {196, 180 * time.Millisecond}}
	hapticFreq   = 55.0
)

// Player implements the game's feedback channel.
type Player struct {
	logger  *slog.Logger
	enabled bool
	volume  float64

	correct *beep.Buffer
	wrong   *beep.Buffer
	haptic  *beep.Buffer

	speakerLock sync.Mutex
	open        bool
}

// New prepares the cue buffers. Files that fail to load fall back to the
// synthesized cue. The speaker is not touched until Open.
func New(s config.Sound, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Player{logger: logger, enabled: s.Enabled, volume: s.Volume}
	if !s.Enabled {
		logger.Info("sound disabled by settings")
		return p
	}

	p.correct = p.cue("correct", s.CorrectFile, correctNotes)
	p.wrong = p.cue("wrong", s.WrongFile, wrongNotes)
	if s.Haptic > 0 {
		if b, err := Melody([]Note{{hapticFreq, s.Haptic}}); err == nil {
			p.haptic = b
		} else {
			logger.Warn("failed to synthesize haptic pulse", "error", err)
		}
	}
	return p
}

func (p *Player) cue(name, file string, fallback []Note) *beep.Buffer {
	if file != "" {
		b, err := LoadFile(file)
		if err == nil {
			p.logger.Debug("loaded sound file", "cue", name, "file", file)
			return b
		}
		p.logger.Warn("failed to load sound file, using synthesized cue", "cue", name, "file", file, "error", err)
	}
	b, err := Melody(fallback)
	if err != nil {
		p.logger.Warn("failed to synthesize cue", "cue", name, "error", err)
		return nil
	}
	return b
}

// Open initializes the speaker. Failure leaves the player silent.
func (p *Player) Open() error {
	if !p.enabled {
		return nil
	}
	if err := speaker.Init(Format.SampleRate, Format.SampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "initialize speaker")
	}
	p.speakerLock.Lock()
	p.open = true
	p.speakerLock.Unlock()
	return nil
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.speakerLock.Lock()
	defer p.speakerLock.Unlock()
	if p.open {
		speaker.Clear()
		speaker.Close()
		p.open = false
	}
}

func (p *Player) Correct()   { p.play(p.correct) }
func (p *Player) Incorrect() { p.play(p.wrong) }

// Haptic stands in for a vibration pulse with a short low rumble; desktops
// have no vibration motor to drive.
func (p *Player) Haptic() { p.play(p.haptic) }

func (p *Player) play(b *beep.Buffer) {
	if b == nil {
		return
	}
	p.speakerLock.Lock()
	defer p.speakerLock.Unlock()
	if !p.open {
		return
	}
	speaker.Play(&effects.Volume{
		Streamer: b.Streamer(0, b.Len()),
		Base:     2,
		Volume:   p.volume,
	})
}

// Melody renders the notes back to back into a buffer.
func Melody(notes []Note) (*beep.Buffer, error) {
	buf := beep.NewBuffer(Format)
	for _, n := range notes {
		tone, err := generators.SineTone(Format.SampleRate, n.Freq)
		if err != nil {
			return nil, errors.Wrapf(err, "tone %gHz", n.Freq)
		}
		buf.Append(beep.Take(Format.SampleRate.N(n.Duration), tone))
	}
	return buf, nil
}

// LoadFile decodes an Ogg Vorbis file into a buffer at Format's rate.
func LoadFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sound")
	}
	streamer, format, err := vorbis.Decode(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != Format.SampleRate {
		s = beep.Resample(4, format.SampleRate, Format.SampleRate, streamer)
	}
	buf := beep.NewBuffer(Format)
	buf.Append(s)
	return buf, nil
}
