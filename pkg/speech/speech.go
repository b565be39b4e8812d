// Package speech synthesises announcement audio.
package speech

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("speech synthesis is not configured")

type Audio struct {
	ContentType string
	Data        []byte
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Audio, error)
}
