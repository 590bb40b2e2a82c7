package adjacency

import "fmt"

// Stats is the observability snapshot of spec §6: everything a caller
// needs to judge memory footprint and hash-distribution health without
// reaching into the raw buffers.
type Stats struct {
	Nodes          uint32
	NodeEdgeTypes  uint32
	NodeCapacity   uint32
	NodeBufferSize uint32
	NodeLoad       float64

	Edges               uint32
	Deleted             uint32
	EdgeCapacity        uint32
	EdgeBufferSize      uint32
	EdgeLoad            float64
	EdgeLoadWithDeletes float64

	Collisions    uint32
	MaxCollisions uint32
	AvgCollisions float64
	Uniformity    float64
}

// String renders a one-line summary for debug logging.
func (s Stats) String() string {
	return fmt.Sprintf(
		"nodes=%d edges=%d(+%d deleted) nodeLoad=%.2f edgeLoad=%.2f uniformity=%.2f maxCollisions=%d",
		s.Nodes, s.Edges, s.Deleted, s.NodeLoad, s.EdgeLoad, s.Uniformity, s.MaxCollisions,
	)
}

// Stats computes a fresh Stats snapshot by walking every bucket chain
// of the edge map; O(edge capacity + live edges). The node map's
// figures come from its header words, without a scan.
func (l *List) Stats() Stats {
	nodeBuckets, nodeItems := l.nodes.Capacity(), l.nodes.Count()
	edgeBuckets, edgeLive, edgeDeleted := l.edges.Capacity(), l.edges.Count(), l.edges.Deletes()

	collisions, maxCollisions, uniformity := bucketStats(l.edges, edgeBuckets, edgeLive)

	var avgCollisions float64
	if edgeBuckets > 0 {
		avgCollisions = float64(collisions) / float64(edgeBuckets)
	}

	return Stats{
		Nodes:          l.nodes.NextID(),
		NodeEdgeTypes:  nodeItems,
		NodeCapacity:   nodeBuckets,
		NodeBufferSize: l.nodes.Buf.Len(),
		NodeLoad:       l.nodes.GetLoad(nodeItems),

		Edges:               edgeLive,
		Deleted:             edgeDeleted,
		EdgeCapacity:        edgeBuckets,
		EdgeBufferSize:      l.edges.Buf.Len(),
		EdgeLoad:            l.edges.Load(edgeLive),
		EdgeLoadWithDeletes: l.edges.Load(edgeLive + edgeDeleted),

		Collisions:    collisions,
		MaxCollisions: maxCollisions,
		AvgCollisions: avgCollisions,
		Uniformity:    uniformity,
	}
}

// bucketHeadWalker is the minimal surface bucketStats needs to walk a
// hash table's bucket chains; satisfied by *edgemap.EdgeMap.
type bucketHeadWalker interface {
	Head(hash uint32) uint32
	Next(item uint32) uint32
}

// bucketStats walks every bucket chain of a map with buckets hash
// buckets and n live items, returning (collisions, maxCollisions,
// uniformity) per spec §6's formula:
//
//	uniformity = Σ(b*(b+1)/2) / ((n/2c) * (n + 2c - 1))
//
// over bucket sizes b, live item count n, capacity c. A value near 1.0
// indicates a Poisson-uniform distribution; 0 is returned when n == 0
// (no edges to distribute).
func bucketStats(m bucketHeadWalker, buckets, n uint32) (collisions, maxCollisions uint32, uniformity float64) {
	var sumTriangular float64
	for h := uint32(0); h < buckets; h++ {
		var size uint32
		for addr := m.Head(h); addr != 0; addr = m.Next(addr) {
			size++
		}
		var bucketCollisions uint32
		if size > 1 {
			bucketCollisions = size - 1
			collisions += bucketCollisions
		}
		if bucketCollisions > maxCollisions {
			maxCollisions = bucketCollisions
		}
		sumTriangular += float64(size) * float64(size+1) / 2
	}

	if n == 0 || buckets == 0 {
		return collisions, maxCollisions, 0
	}
	denom := (float64(n) / (2 * float64(buckets))) * (float64(n) + 2*float64(buckets) - 1)
	if denom == 0 {
		return collisions, maxCollisions, 0
	}
	return collisions, maxCollisions, sumTriangular / denom
}
