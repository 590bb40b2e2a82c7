// Package wordgraph implements a compact, serializable typed directed
// multigraph whose storage is a single flat, fixed-width word buffer
// that can be handed across process/worker boundaries by reference.
//
// Under the hood:
//
//	internal/wordbuf — the word-width-parametric arena (8/16/32-bit words)
//	sharedmap        — the shared bucket/collision-chain/intrusive-list primitive
//	nodemap          — the per-(node id, edge type) record map
//	edgemap          — the per-(from, to, type) edge record map
//	adjacency        — the orchestrator: addNode/addEdge/removeEdge, capacity
//	                   policy, neighborhood enumeration, serialize/deserialize, stats
//
// sharedbuf and config are the ambient layers around the engine:
// anonymous-shared-memory buffer backing plus concurrent snapshot
// fan-out, and HCL-file configuration of word width and capacities.
// cmd/wordgraph-cli is a small inspection tool built on both.
//
//	go get github.com/lvlath-labs/wordgraph/adjacency
package wordgraph
