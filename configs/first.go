package configs

import (
	"errors"
)

// First decodes the first value at path, or returns the zero value when no
// source defines it. Decode errors panic; the schema rules them out.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}
