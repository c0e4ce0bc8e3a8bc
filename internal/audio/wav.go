package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"audioheal/internal/services"
)

// LoadWAV reads a 16-bit mono PCM WAV file into a track.
func LoadWAV(path string) (*Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "audio", "load", path, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, services.Wrap(services.ErrValidation, "audio", "load", fmt.Sprintf("%s is not a valid WAV file", path), nil)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "audio", "load", fmt.Sprintf("read PCM from %s", path), err)
	}
	if buf.Format.NumChannels != 1 {
		return nil, services.Wrap(services.ErrValidation, "audio", "load", fmt.Sprintf("%s has %d channels, expected mono", path, buf.Format.NumChannels), nil)
	}
	if buf.SourceBitDepth != 0 && buf.SourceBitDepth != bitDepth {
		return nil, services.Wrap(services.ErrValidation, "audio", "load", fmt.Sprintf("%s is %d-bit, expected %d-bit PCM", path, buf.SourceBitDepth, bitDepth), nil)
	}

	return NewTrack(buf.Data, buf.Format.SampleRate)
}

// SaveWAV writes the track as a 16-bit mono PCM WAV file. The data goes to
// a temporary file renamed into place on success, so the destination path
// never holds a partial file.
func SaveWAV(path string, track *Track) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := encodeWAV(tmp, track); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write samples to %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}

func encodeWAV(w io.WriteSeeker, track *Track) error {
	encoder := wav.NewEncoder(w, track.rate, bitDepth, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: track.rate},
		Data:           track.samples,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}
