package bits

import "golang.org/x/exp/constraints"

// Fits reports whether v can be stored in width bytes without losing bits.
func Fits[T constraints.Unsigned](v T, width int) bool {
	if width >= 8 {
		return true
	}
	if width <= 0 {
		return false
	}
	return uint64(v)>>(uint(width)*8) == 0
}

// RoundUp rounds n up to the next multiple of unit.
func RoundUp[T constraints.Integer](n, unit T) T {
	return (n + unit - 1) / unit * unit
}
