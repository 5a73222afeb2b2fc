package audiofile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-harness/dsp/buffer"
	"github.com/cwbudde/algo-harness/dsp/core"
	"github.com/cwbudde/algo-harness/internal/errkind"
)

const formatPCM = 1

// WAV decodes and encodes PCM RIFF/WAVE files.
type WAV struct{}

// Decode reads the WAV file at path.
func (WAV) Decode(path string) (Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Audio{}, errkind.Wrap(errkind.Resource, err, "file not found: %s", path)
		}
		return Audio{}, errkind.Wrap(errkind.Resource, err, "failed to open audio file: %s", path)
	}
	defer f.Close()

	a, err := DecodeWAV(f)
	if err != nil {
		return Audio{}, errkind.Wrap(errkind.Resource, err, "failed to read %s", path)
	}
	return a, nil
}

// DecodeWAV reads a PCM WAV stream into planar float samples.
func DecodeWAV(r io.ReadSeeker) (Audio, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return Audio{}, errors.New("unsupported or unreadable audio file")
	}
	if d.WavAudioFormat != formatPCM {
		return Audio{}, fmt.Errorf("unsupported or unreadable audio file: format tag %d is not PCM", d.WavAudioFormat)
	}

	bits := int(d.BitDepth)
	if !validBitDepth(bits) {
		return Audio{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	channels := int(d.NumChans)
	if channels <= 0 {
		return Audio{}, errors.New("audio file has no channels")
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return Audio{}, fmt.Errorf("unsupported or unreadable audio file: %w", err)
	}

	frames := len(pcm.Data) / channels
	if frames <= 0 || frames > math.MaxInt32 {
		return Audio{}, fmt.Errorf("invalid or too-large audio file: %d samples", frames)
	}

	out := buffer.New(channels, frames)
	for c := 0; c < channels; c++ {
		ch := out.Channel(c)
		for i := range ch {
			v := pcm.Data[i*channels+c]
			if bits == 8 {
				v -= 128
			}
			ch[i] = toFloat(v, bits)
		}
	}

	return Audio{Buffer: out, SampleRate: float64(d.SampleRate)}, nil
}

// Encode writes a to path as PCM WAV at bitDepth.
func (WAV) Encode(path string, a Audio, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return errkind.Wrap(errkind.Resource, err, "failed to create output file: %s", path)
	}

	if err := EncodeWAV(f, a, bitDepth); err != nil {
		f.Close()
		return errkind.Wrap(errkind.Resource, err, "failed to write WAV: %s", path)
	}
	if err := f.Close(); err != nil {
		return errkind.Wrap(errkind.Resource, err, "failed to write WAV: %s", path)
	}
	return nil
}

// EncodeWAV writes a as interleaved PCM at bitDepth. Samples are clamped
// to the representable range.
func EncodeWAV(w io.WriteSeeker, a Audio, bitDepth int) error {
	if !validBitDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := a.Buffer.NumChannels()
	if channels <= 0 {
		return errors.New("audiofile: cannot encode zero channels")
	}
	frames := a.Buffer.NumSamples()
	rate := core.RoundToInt(a.SampleRate)

	data := make([]int, frames*channels)
	for c := 0; c < channels; c++ {
		for i, x := range a.Buffer.Channel(c) {
			v := toInt(x, bitDepth)
			if bitDepth == 8 {
				v += 128
			}
			data[i*channels+c] = v
		}
	}

	enc := wav.NewEncoder(w, rate, bitDepth, channels, formatPCM)
	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	return nil
}
