package narration

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os/exec"

	"github.com/tkha/tierquiz/internal/speech"
)

// ExecPlayer pipes a WAV stream into an external player such as
// `ffplay -nodisp -autoexit -`. Cancelling ctx kills the process.
type ExecPlayer struct {
	Command    []string
	SampleRate int
}

// NewExecPlayer returns a player for command, or an error when the binary
// is not on PATH.
func NewExecPlayer(command []string, sampleRate int) (*ExecPlayer, error) {
	if len(command) == 0 {
		return nil, errors.New("narration: empty player command")
	}
	if _, err := exec.LookPath(command[0]); err != nil {
		return nil, fmt.Errorf("narration: player %q: %w", command[0], err)
	}
	if sampleRate <= 0 {
		sampleRate = speech.DefaultSampleRate
	}
	return &ExecPlayer{Command: command, SampleRate: sampleRate}, nil
}

func (p *ExecPlayer) Play(ctx context.Context, pcm []byte) error {
	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	cmd.Stdin = bytes.NewReader(WAV(pcm, p.SampleRate))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", p.Command[0], err)
	}
	return nil
}

// WAV wraps 16-bit mono PCM in a canonical 44-byte RIFF header.
func WAV(pcm []byte, sampleRate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	blockAlign := channels * bitsPerSample / 8
	le := binary.LittleEndian

	b := make([]byte, 0, 44+len(pcm))
	b = append(b, "RIFF"...)
	b = le.AppendUint32(b, uint32(36+len(pcm)))
	b = append(b, "WAVEfmt "...)
	b = le.AppendUint32(b, 16)
	b = le.AppendUint16(b, 1) // PCM
	b = le.AppendUint16(b, channels)
	b = le.AppendUint32(b, uint32(sampleRate))
	b = le.AppendUint32(b, uint32(sampleRate*blockAlign))
	b = le.AppendUint16(b, uint16(blockAlign))
	b = le.AppendUint16(b, bitsPerSample)
	b = append(b, "data"...)
	b = le.AppendUint32(b, uint32(len(pcm)))
	return append(b, pcm...)
}
