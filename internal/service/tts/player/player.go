package player

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player воспроизводит синтезированное аудио.
type Player interface {
	Play(format string, r io.ReadCloser) error
	PlayFile(path string) error
}

// Default реализует Player и поддерживает mp3 и wav.
type Default struct{ volumeDB float64 }

// New создаёт плеер без изменения громкости (0 dB).
func New() *Default { return &Default{volumeDB: 0} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

// PlayFile воспроизводит аудиофайл, определяя формат по расширению.
func (d *Default) PlayFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio %s: %w", path, err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return d.Play(format, f)
}

// Play декодирует поток и блокируется до конца воспроизведения.
func (d *Default) Play(format string, r io.ReadCloser) error {
	var decode func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)
	switch strings.ToLower(format) {
	case "wav":
		decode = func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(rc) }
	case "mp3":
		decode = func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(rc) }
	default:
		return fmt.Errorf("unsupported playback format %q; use mp3 or wav", format)
	}

	streamer, f, err := decode(r)
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(f.SampleRate, f.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   d.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}
