package dockerexec

import (
	"bytes"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"io"
	"strings"
	"sync"
)

type lineWriter struct {
	messageType types.LogMessageType
	processor   types.LogMessageProcessor
	buf         bytes.Buffer
	mu          sync.Mutex
}

var _ io.Writer = (*lineWriter)(nil)

func newLineWriter(messageType types.LogMessageType, processor types.LogMessageProcessor) *lineWriter {
	return &lineWriter{
		messageType: messageType,
		processor:   processor,
	}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)

	for {
		line, err := w.buf.ReadString('\n')
		if err == io.EOF {
			w.buf.WriteString(line)
			break
		} else if err != nil {
			return 0, err
		}

		w.emit(line)
	}

	return len(p), nil
}

// Flush emits any trailing content not terminated by a newline.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *lineWriter) emit(line string) {
	if w.processor == nil {
		return
	}

	w.processor(&types.LogMessage{
		Type:    w.messageType,
		Content: strings.TrimRight(line, "\r\n"),
	})
}
