package sandbox

import (
	"bytes"
	"fmt"
)

// captureBuffer collects snippet console output up to a byte cap. A
// write past the cap keeps what fits and fails, so a chatty snippet
// faults while the output captured so far is preserved.
type captureBuffer struct {
	buf bytes.Buffer
	max int
}

func newCaptureBuffer(maxBytes int) *captureBuffer {
	return &captureBuffer{max: maxBytes}
}

func (b *captureBuffer) Write(p []byte) (int, error) {
	if b.max > 0 && b.buf.Len()+len(p) > b.max {
		room := b.max - b.buf.Len()
		if room > 0 {
			b.buf.Write(p[:room])
		} else {
			room = 0
		}
		return room, fmt.Errorf("output limit exceeded (%d bytes)", b.max)
	}
	return b.buf.Write(p)
}

func (b *captureBuffer) String() string {
	return b.buf.String()
}
