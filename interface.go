package villagegraph

// Random is the only source of entropy the village generators see.
// Every generator draws from the same stream in a fixed order; that order
// is what makes a seed reproduce the same village, so a generator must
// never draw more (or fewer) values than its siblings expect.
type Random interface {
	// Float64 returns the next value in [0, 1)
	Float64() float64
}
