// Package sharedmap implements SharedTypeMap from spec §4.1: the flat,
// shared-buffer hash map primitive that NodeTypeMap and EdgeTypeMap
// extend by composition.
//
// Base owns no behavior beyond bucket-chain linking/unlinking, linear
// item-region iteration, and the copy-with-rebase used by node-map
// growth. It knows exactly two per-item fields — next and type — at
// fixed word offsets ItemNext and ItemType; everything a subclass
// layers on top (node head/tail pointers, edge from/to/link fields)
// lives at offsets >= 2 inside the item and is copied unchanged by
// Base.CopyFrom (see CopyFrom's doc comment).
//
// There is no runtime dispatch here: NodeTypeMap and EdgeTypeMap embed
// a *Base configured with their own HeaderSize/ItemSize and call
// straight through to its methods, the composition-over-inheritance
// idiom spec §9 calls for.
package sharedmap
