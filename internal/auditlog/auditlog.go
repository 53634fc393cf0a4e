// Package auditlog captures every wire message with its timestamp and
// endpoints. Connections append concurrently; at shutdown the entries are
// merged into a single timestamp-ordered report.
package auditlog

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Entry is a single captured message
type Entry struct {
	Time time.Time
	From string
	To   string
	Text string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s,%s,%s", e.Time.Format("2006-01-02T15:04:05.000"), e.From, e.To, e.Text)
}

// Log is a concurrency-safe collection of entries
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty log
func New() *Log {
	return &Log{}
}

// Record appends a message to the log, stamped with the current time
func (l *Log) Record(from, to, text string) {
	entry := Entry{
		Time: time.Now(),
		From: from,
		To:   to,
		Text: text,
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Len returns the number of captured entries
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Flush writes all entries to w ordered by capture time and clears the log
func (l *Log) Flush(w io.Writer) error {
	l.mu.Lock()
	entries := l.entries
	l.entries = nil
	l.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})

	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}

	return nil
}
