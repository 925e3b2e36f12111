package configs

import "iter"

// All decodes the value at path from every source defining it, in priority
// order. Decode errors panic; the schema rules them out.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.IterCueValues(path) {
			if err != nil {
				panic(err)
			}
			var ret T
			if err := value.Decode(&ret); err != nil {
				panic(err)
			}
			if !yield(ret) {
				return
			}
		}
	}
}
