package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// SplitEven divides total into parts shares that differ by at most one,
// larger shares first.
func SplitEven(total, parts int) []int {
	if parts <= 0 {
		panic("parts must be positive")
	}
	shares := make([]int, parts)
	for i := range shares {
		shares[i] = total / parts
		if i < total%parts {
			shares[i]++
		}
	}
	return shares
}
