package audio

import (
	"encoding/binary"

	"audioheal/internal/services"
)

// FromPCM builds a track from raw signed 16-bit little-endian mono PCM,
// the stream format the synthesis service returns.
func FromPCM(data []byte, rate int) (*Track, error) {
	if len(data)%2 != 0 {
		return nil, services.Wrap(services.ErrValidation, "audio", "decode pcm", "odd byte count in 16-bit stream", nil)
	}
	samples := make([]int, len(data)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(data[i*2:])))
	}
	return NewTrack(samples, rate)
}

// ToPCM renders the track as raw signed 16-bit little-endian mono PCM.
func ToPCM(track *Track) []byte {
	out := make([]byte, len(track.samples)*2)
	for i, s := range track.samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}
	return out
}
