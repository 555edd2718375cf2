package telemetry

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"
)

// Event is the wire form of a telemetry record
type Event struct {
	Name  string            `json:"name"`
	Props map[string]string `json:"props,omitempty"`
	Time  time.Time         `json:"time"`
}

// JSONSink writes telemetry events as JSON lines. Publishing never fails from
// the caller's point of view; encode errors are logged and dropped.
type JSONSink struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewJSONSink creates a sink writing to w
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w, now: time.Now}
}

// Publish encodes one event as a JSON line
func (s *JSONSink) Publish(event string, props map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := Event{Name: event, Props: props, Time: s.now()}
	if err := json.NewEncoder(s.w).Encode(record); err != nil {
		log.Printf("failed to publish telemetry event %s: %v", event, err)
	}
}

// NopSink discards all events
type NopSink struct{}

// Publish does nothing
func (NopSink) Publish(event string, props map[string]string) {}
