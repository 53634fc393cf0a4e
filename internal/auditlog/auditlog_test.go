package auditlog

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_Flush_ordersByTime(t *testing.T) {
	a := assert.New(t)

	l := New()
	l.Record("server", "client", "DEAL1N")
	l.Record("client", "server", "IAMN")
	a.Equal(2, l.Len())

	// flush order is by capture time, not append order; swap the times
	l.mu.Lock()
	l.entries[0].Time, l.entries[1].Time = l.entries[1].Time, l.entries[0].Time
	l.mu.Unlock()

	var buf bytes.Buffer
	a.NoError(l.Flush(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	a.Equal(2, len(lines))
	a.Contains(lines[0], "client,server,IAMN")
	a.Contains(lines[1], "server,client,DEAL1N")

	// flushed entries are gone
	a.Equal(0, l.Len())
}

func TestLog_Record_concurrent(t *testing.T) {
	l := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Record("a", "b", "TRICK1")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, l.Len())
}
