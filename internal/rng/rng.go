package rng

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int

	// Int63 will return a non-negative 63-bit integer
	Int63() int64
}
