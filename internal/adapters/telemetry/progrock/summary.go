package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Entry is the last known state of one recorded vertex.
type Entry struct {
	Name   string
	Cached bool
	Done   bool
	Error  string
}

// Summary is a progrock.Writer that keeps the latest state of every vertex, in the order
// vertices were first seen.
type Summary struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*Entry
	closed  bool
}

// NewSummary creates an empty Summary.
func NewSummary() *Summary {
	return &Summary{entries: make(map[string]*Entry)}
}

// WriteStatus implements progrock.Writer.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range update.GetVertexes() {
		e, ok := s.entries[v.GetId()]
		if !ok {
			e = &Entry{}
			s.entries[v.GetId()] = e
			s.order = append(s.order, v.GetId())
		}
		e.Name = v.GetName()
		e.Cached = e.Cached || v.GetCached()
		e.Done = e.Done || v.GetCompleted() != nil
		if msg := v.GetError(); msg != "" {
			e.Error = msg
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (s *Summary) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Entries returns the recorded vertices in first-seen order.
func (s *Summary) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.entries[id])
	}
	return out
}

// Print writes one line per vertex to w.
func (s *Summary) Print(w io.Writer) error {
	for _, e := range s.Entries() {
		mark := "✔"
		switch {
		case e.Error != "":
			mark = "✘"
		case e.Cached:
			mark = "⚡"
		case !e.Done:
			mark = "…"
		}
		line := fmt.Sprintf("%s %s", mark, e.Name)
		if e.Error != "" {
			line += ": " + e.Error
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
