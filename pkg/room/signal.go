package room

// token is a control signal delivered to a seat's session worker over its
// seat channel. Tokens are FIFO per seat; the dealer writes pause, resume and
// trick-taken, and the turn token is written by the dealer or by the previous
// seat's worker on handoff.
type token int

const (
	tokenPause token = iota + 1
	tokenResume
	tokenTurn
	tokenTaken
)

func (t token) String() string {
	switch t {
	case tokenPause:
		return "pause"
	case tokenResume:
		return "resume"
	case tokenTurn:
		return "turn"
	case tokenTaken:
		return "taken"
	}

	return "unknown"
}

// seatBacklog bounds the number of undelivered tokens per seat. Tokens only
// accumulate while a seat has no worker, which also pauses the dealer, so the
// backlog stays small in practice.
const seatBacklog = 64

// semaphore is a counting completion signal from workers to the dealer:
// incremented on a trick-ending play, a disconnect, or an end-of-deal
// acknowledgment
type semaphore chan struct{}

const completionBacklog = 256

func newSemaphore() semaphore {
	return make(semaphore, completionBacklog)
}

func (s semaphore) signal() {
	s <- struct{}{}
}

func (s semaphore) wait() {
	<-s
}

// drain consumes every pending signal without blocking
func (s semaphore) drain() {
	for {
		select {
		case <-s:
		default:
			return
		}
	}
}

// barrier blocks until n signals have been consumed
func (s semaphore) barrier(n int) {
	for i := 0; i < n; i++ {
		<-s
	}
}
