package log

import (
	"encoding/json"
	"io"
	"os"
	"sync"
)

// Transporter writes log entries to a destination.
type Transporter interface {
	Write(entry Entry) error
}

// Stdout writes line-delimited JSON entries to a writer, os.Stdout by default.
type Stdout struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewStdout creates a transporter writing to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

// NewStdoutWithWriter creates a transporter with a custom writer, for tests.
func NewStdoutWithWriter(w io.Writer) *Stdout {
	return &Stdout{writer: w}
}

// Write marshals the entry and appends a newline.
func (s *Stdout) Write(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.writer.Write(data)
	return err
}
