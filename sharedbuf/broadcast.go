package sharedbuf

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Broadcast runs read(snapshot) concurrently for each reader, where
// snapshot is the same byte slice every time — the read-only fan-out
// of a single serialized buffer to N concurrent goroutines that spec
// §5 describes as "readers in other execution contexts". It returns
// the first error any reader produces (errgroup semantics) after every
// reader has returned; the ctx passed to the readers is cancelled as
// soon as one of them fails, and readers that do not check it run to
// completion.
func Broadcast(ctx context.Context, snapshot []byte, readers int, read func(ctx context.Context, snapshot []byte, readerIndex int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < readers; i++ {
		i := i
		g.Go(func() error {
			return read(gctx, snapshot, i)
		})
	}
	return g.Wait()
}
