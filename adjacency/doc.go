// Package adjacency implements AdjacencyList from spec §4.4: the
// orchestrator composing a nodemap.NodeMap and an edgemap.EdgeMap into
// addNode/addEdge/removeEdge, neighborhood enumeration, the capacity
// (grow/compact) policy, and serialize/deserialize.
//
// List is the sole mutation surface. Per spec §5, mutation is
// single-writer and intentionally not internally synchronized — unlike
// the teacher package's muVert/muEdgeAdj locks, List carries no mutex,
// because "thread-safe concurrent mutation" is an explicit spec
// Non-goal. Read-only snapshot handoff across goroutines is still
// supported (see the sibling sharedbuf package) by aliasing the raw
// buffer bytes, exactly as spec §5 describes.
package adjacency
