package content

// Merge combines configuration layers into a new mapping. Later layers win
// for keys they share with earlier ones; nested values are replaced, not
// merged. None of the inputs are modified.
func Merge(layers ...Values) Values {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	out := make(Values, n)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}
