package core

// Random is the random source used for coordinate generation.
// *math/rand.Rand satisfies it.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}
