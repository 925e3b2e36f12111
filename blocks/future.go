package blocks

import "context"

// Future runs a block until it finishes or fails. Returning means the block
// is no longer scheduled; nothing restarts it.
type Future func(ctx context.Context) error
