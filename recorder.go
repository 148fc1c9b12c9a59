package yamato

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// Message is one recorded capture.
type Message struct {
	Capture   Capture
	Timestamp time.Time
}

// Recorder appends messages to Dest as a gob stream.
type Recorder struct {
	Dest io.Writer

	enc  *gob.Encoder
	once sync.Once
	mu   sync.Mutex
}

func (r *Recorder) Receive(msg Message) error {
	r.init()

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.enc.Encode(msg)
}

func (r *Recorder) init() {
	r.once.Do(func() {
		r.enc = gob.NewEncoder(r.Dest)
	})
}

// ReadIn decodes a recorded stream onto out and closes it at EOF.
func ReadIn(out chan<- Message, r io.Reader) error {
	defer close(out)

	dec := gob.NewDecoder(r)

	for {
		var msg Message
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("while decoding: %w", err)
		}

		out <- msg
	}
}
