package logs

import (
	"context"
	"log/slog"
)

type blockKey struct{}

type blockInfo struct {
	name string
	id   int
}

// WithBlock tags ctx so records logged with it carry the block kind and id.
func WithBlock(ctx context.Context, name string, id int) context.Context {
	return context.WithValue(ctx, blockKey{}, blockInfo{
		name: name,
		id:   id,
	})
}

func BlockFromContext(ctx context.Context) (name string, id int, ok bool) {
	info, ok := ctx.Value(blockKey{}).(blockInfo)
	if !ok {
		return "", 0, false
	}
	return info.name, info.id, true
}

func blockAttrs(ctx context.Context) []slog.Attr {
	name, id, ok := BlockFromContext(ctx)
	if !ok {
		return nil
	}
	return []slog.Attr{
		slog.String("block", name),
		slog.Int("block.id", id),
	}
}
