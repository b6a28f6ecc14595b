package obj

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"
)

// EventLog is an append-only record of notable session events (spawns,
// collections, resets). Entries stay in memory for inspection; when a CSV
// path is configured each entry is mirrored to disk as it is appended.
type EventLog struct {
	entries []EventEntry

	file *os.File
	csv  *csv.Writer
}

type EventEntry struct {
	Time    time.Time
	Kind    string
	Message string
	Score   int
}

// NewEventLog creates an in-memory log. csvPath may be empty to disable the
// disk mirror; a mirror that fails to open is logged and skipped rather than
// failing the session.
func NewEventLog(csvPath string) *EventLog {
	l := &EventLog{}
	if csvPath == "" {
		return l
	}
	f, err := os.OpenFile(csvPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("event log: open %s: %v", csvPath, err)
		return l
	}
	l.file = f
	l.csv = csv.NewWriter(f)
	return l
}

// Append records an event.
func (l *EventLog) Append(kind, message string, score int) {
	if l == nil {
		return
	}
	entry := EventEntry{
		Time:    time.Now(),
		Kind:    kind,
		Message: message,
		Score:   score,
	}
	l.entries = append(l.entries, entry)

	if l.csv != nil {
		record := []string{
			entry.Time.Format("2006-01-02 15:04:05.000"),
			entry.Kind,
			entry.Message,
			fmt.Sprintf("%d", entry.Score),
		}
		if err := l.csv.Write(record); err != nil {
			log.Printf("event log: write: %v", err)
		}
		l.csv.Flush()
	}
}

// Entries returns a copy of the recorded events.
func (l *EventLog) Entries() []EventEntry {
	if l == nil {
		return nil
	}
	return append([]EventEntry(nil), l.entries...)
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Close flushes and closes the CSV mirror, if any.
func (l *EventLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.csv.Flush()
	return l.file.Close()
}
