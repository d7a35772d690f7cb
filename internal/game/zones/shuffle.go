package zones

// Source is the random source used for shuffles and random picks.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Shuffle permutes cards in place with Fisher-Yates.
func Shuffle(cards []*CardInstance, rng Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Pick returns a uniformly chosen element of candidates, or -1 when empty.
func Pick(candidates []int, rng Source) int {
	if len(candidates) == 0 {
		return -1
	}
	return candidates[rng.IntN(len(candidates))]
}
