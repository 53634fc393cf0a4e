package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("pause", tokenPause.String())
	a.Equal("resume", tokenResume.String())
	a.Equal("turn", tokenTurn.String())
	a.Equal("taken", tokenTaken.String())
	a.Equal("unknown", token(0).String())
}

func TestSemaphore(t *testing.T) {
	a := assert.New(t)

	s := newSemaphore()
	s.signal()
	s.signal()
	s.wait()
	a.Len(s, 1)

	s.drain()
	a.Len(s, 0)

	// drain on empty must not block
	s.drain()

	for i := 0; i < 4; i++ {
		s.signal()
	}
	s.barrier(4)
	a.Len(s, 0)
}
