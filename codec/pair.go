package codec

import "fmt"

// Pair couples two values, most often a decoded value with the serialized
// remainder it was read from.
type Pair[F, S any] struct {
	First  F
	Second S
}

func PairOf[F, S any](first F, second S) Pair[F, S] {
	return Pair[F, S]{First: first, Second: second}
}

func (p Pair[F, S]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}
