package configs

import (
	"errors"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

var ErrValueNotFound = errors.New("value not found")

type Loader struct {
	getRoots func() ([]rootInfo, error)
}

// Source is one configuration document. Later sources never override earlier
// ones; lookups return the first source defining a path.
type Source struct {
	Path    string
	Content []byte
}

func NewLoader(filePaths []string, schemaSrc string) Loader {
	return newLoader(func() ([]Source, error) {
		sources := make([]Source, 0, len(filePaths))
		for _, filePath := range filePaths {
			content, err := os.ReadFile(filePath)
			if err != nil {
				return nil, err
			}
			sources = append(sources, Source{
				Path:    filePath,
				Content: content,
			})
		}
		return sources, nil
	}, schemaSrc)
}

func NewLoaderFromSources(sources []Source, schemaSrc string) Loader {
	return newLoader(func() ([]Source, error) {
		return sources, nil
	}, schemaSrc)
}

func newLoader(getSources func() ([]Source, error), schemaSrc string) Loader {
	return Loader{

		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, err
				}
			}

			sources, err := getSources()
			if err != nil {
				return nil, err
			}

			for _, source := range sources {
				value := ctx.CompileBytes(
					source.Content,
					cue.Filename(source.Path),
				)
				if err = value.Err(); err != nil {
					return nil, err
				}

				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, err
					}
				}

				ret = append(ret, rootInfo{
					value: value,
					path:  source.Path,
				})
			}

			return
		}),
	}
}

type rootInfo struct {
	value cue.Value
	path  string
}

// Check loads and validates every source.
func (l Loader) Check() error {
	_, err := l.getRoots()
	return err
}

func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		roots, err := l.getRoots()
		if err != nil {
			yield(nil, err)
			return
		}

		cuePath := cue.ParsePath(path)
		for _, info := range roots {
			value := info.value.LookupPath(cuePath)
			if value.Exists() && value.Err() == nil {
				if !yield(&value, nil) {
					break
				}
			}
		}
	}
}

// Lookup returns the value at path from the first source defining it.
func (l Loader) Lookup(path string) (cue.Value, error) {
	for value, err := range l.IterCueValues(path) {
		if err != nil {
			return cue.Value{}, err
		}
		return *value, nil
	}
	return cue.Value{}, ErrValueNotFound
}

func (l Loader) AssignFirst(path string, target any) error {
	value, err := l.Lookup(path)
	if err != nil {
		return err
	}
	return value.Decode(target)
}
