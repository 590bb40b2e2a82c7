package adjacency

import (
	"github.com/lvlath-labs/wordgraph/edgemap"
	"github.com/lvlath-labs/wordgraph/internal/engerr"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
	"github.com/lvlath-labs/wordgraph/nodemap"
	"github.com/lvlath-labs/wordgraph/sharedbuf"
	"github.com/lvlath-labs/wordgraph/sharedmap"
)

// List is AdjacencyList, spec §4.4: the orchestrator composing a
// nodemap.NodeMap and an edgemap.EdgeMap.
type List struct {
	width wordbuf.Width
	nodes *nodemap.NodeMap
	edges *edgemap.EdgeMap
}

type config struct {
	width        wordbuf.Width
	nodeCapacity uint32
	edgeCapacity uint32
	sharedMemory bool
}

// Option configures a List at construction, mirroring the teacher
// package's functional-option idiom (core.GraphOption).
type Option func(*config)

// WithWordWidth selects the word width backing both maps. Default:
// wordbuf.Width32.
func WithWordWidth(w wordbuf.Width) Option {
	return func(c *config) { c.width = w }
}

// WithNodeCapacity sets the initial node-map capacity (raised to
// nodemap.MinCapacity if smaller; New fails with ErrCapacityOverflow
// if it exceeds nodemap.MaxCapacity).
func WithNodeCapacity(capacity uint32) Option {
	return func(c *config) { c.nodeCapacity = capacity }
}

// WithEdgeCapacity sets the initial edge-map capacity (raised to
// edgemap.MinCapacity if smaller; New fails with ErrCapacityOverflow
// if it exceeds edgemap.MaxCapacity).
func WithEdgeCapacity(capacity uint32) Option {
	return func(c *config) { c.edgeCapacity = capacity }
}

// WithSharedMemory backs both maps by anonymous MAP_SHARED mappings
// (sharedbuf.MMap) instead of plain Go slices, per spec §5's "backing
// buffer must support cross-context sharing when requested": the
// bytes can then be observed by another execution context (a fork'd
// worker) without a copy. Mutually exclusive with handing New an
// unrelated buffer pair; resize operations keep allocating ordinary
// (non-shared) buffers, matching the teacher's "shared state is the
// construction-time handoff, not every intermediate" posture.
func WithSharedMemory() Option {
	return func(c *config) { c.sharedMemory = true }
}

// New allocates a fresh, empty List.
func New(opts ...Option) (*List, error) {
	cfg := config{
		width:        wordbuf.Width32,
		nodeCapacity: nodemap.MinCapacity,
		edgeCapacity: edgemap.MinCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.sharedMemory {
		return newShared(cfg)
	}

	nodes, err := nodemap.New(cfg.width, cfg.nodeCapacity)
	if err != nil {
		return nil, err
	}
	edges, err := edgemap.New(cfg.width, cfg.edgeCapacity)
	if err != nil {
		return nil, err
	}
	return &List{width: cfg.width, nodes: nodes, edges: edges}, nil
}

// newShared allocates both maps over sharedbuf.MMap regions sized to
// exactly hold cfg's capacities, rather than over private Go slices.
func newShared(cfg config) (*List, error) {
	nodeCap := cfg.nodeCapacity
	if nodeCap < nodemap.MinCapacity {
		nodeCap = nodemap.MinCapacity
	}
	edgeCap := cfg.edgeCapacity
	if edgeCap < edgemap.MinCapacity {
		edgeCap = edgemap.MinCapacity
	}

	nodeWords := sharedmap.Length(nodemap.HeaderSize, nodemap.ItemSize, nodeCap)
	nodeRegion, err := sharedbuf.MMap(cfg.width, nodeWords)
	if err != nil {
		return nil, err
	}
	nodeBuf, err := nodeRegion.Buffer()
	if err != nil {
		return nil, err
	}
	nodes, err := nodemap.NewOverBuffer(cfg.width, nodeBuf, nodeCap)
	if err != nil {
		return nil, err
	}

	edgeWords := sharedmap.Length(edgemap.HeaderSize, edgemap.ItemSize, edgeCap)
	edgeRegion, err := sharedbuf.MMap(cfg.width, edgeWords)
	if err != nil {
		return nil, err
	}
	edgeBuf, err := edgeRegion.Buffer()
	if err != nil {
		return nil, err
	}
	edges, err := edgemap.NewOverBuffer(cfg.width, edgeBuf, edgeCap)
	if err != nil {
		return nil, err
	}

	return &List{width: cfg.width, nodes: nodes, edges: edges}, nil
}

// AddNode mints a fresh node id, growing the node map first if its
// load has crept above LoadFactor. No edge-side record is created yet
// — per spec §3, node records are lazily created per (id, type) pair
// the first time addEdge actually needs one.
func (l *List) AddNode() (uint32, error) {
	id := l.nodes.GetID()
	if l.nodes.GetLoad(l.nodes.Count()) > LoadFactor {
		if err := l.resizeNodes(); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (l *List) resizeNodes() error {
	newCap, err := nextNodeCapacity(l.width, l.nodes.Capacity())
	if err != nil {
		return err
	}
	fresh, err := nodemap.New(l.width, newCap)
	if err != nil {
		return err
	}
	if err := fresh.Set(l.nodes); err != nil {
		return err
	}
	l.nodes = fresh
	return nil
}

// AddEdge adds the edge (from, to, typ) if not already present,
// following spec §4.4's six-step algorithm: duplicate check, capacity
// policy (growth or compaction) with rehash, node-record lookup/growth/
// creation, edge-record creation, and intrusive-list linking.
//
// Returns false (not an error) if the triple already exists. Fails
// with ErrInvalidEdgeType if typ == 0.
func (l *List) AddEdge(from, to, typ uint32) (bool, error) {
	if typ == 0 {
		return false, engerr.Wrap(engerr.ErrInvalidEdgeType, "edge type must be > 0 (got 0)")
	}

	hash := l.edges.Hash(from, to, typ)
	if _, ok := l.edges.AddressOf(hash, from, to, typ); ok {
		return false, nil // Duplicate: not an error, map unchanged.
	}

	total := l.edges.Count() + 1 + l.edges.Deletes()
	if l.edges.Load(total) > LoadFactor {
		var targetCount uint32
		if l.edges.Load(l.edges.Deletes()) > UnloadFactor {
			targetCount = l.edges.Count() + 1 // compaction: tombstones dropped
		} else {
			targetCount = total // pure growth
		}
		newCap, err := nextEdgeCapacity(l.width, l.edges.Capacity(), l.edges.Load(targetCount))
		if err != nil {
			return false, err
		}
		if err := l.resizeEdges(newCap); err != nil {
			return false, err
		}
		hash = l.edges.Hash(from, to, typ) // capacity changed: rehash
	}

	toNode, okTo := l.nodes.AddressOf(to, typ)
	var fromNode uint32
	var okFrom bool
	if from == to {
		fromNode, okFrom = toNode, okTo
	} else {
		fromNode, okFrom = l.nodes.AddressOf(from, typ)
	}

	if (!okTo || !okFrom) && l.nodes.GetLoad(l.nodes.Count()) >= LoadFactor {
		if err := l.resizeNodes(); err != nil {
			return false, err
		}
		toNode, okTo = l.nodes.AddressOf(to, typ)
		if from == to {
			fromNode, okFrom = toNode, okTo
		} else {
			fromNode, okFrom = l.nodes.AddressOf(from, typ)
		}
	}

	if !okTo {
		addr, err := l.nodes.Add(to, typ)
		if err != nil {
			return false, err
		}
		toNode = addr
		if from == to {
			fromNode, okFrom = addr, true
		}
	}
	if !okFrom {
		addr, err := l.nodes.Add(from, typ)
		if err != nil {
			return false, err
		}
		fromNode = addr
	}

	edge := l.edges.Add(hash, from, to, typ)

	if prevIn := l.nodes.LinkIn(toNode, edge); prevIn != 0 {
		l.edges.LinkIn(prevIn, edge)
	}
	if prevOut := l.nodes.LinkOut(fromNode, edge); prevOut != 0 {
		l.edges.LinkOut(prevOut, edge)
	}

	return true, nil
}

// RemoveEdge deletes the edge (from, to, typ) if present, unlinking it
// from both node-side intrusive lists and the edge hash chain before
// tombstoning it.
//
// Returns false (not an error) if the triple is absent. Fails with
// ErrInconsistent if the node record an existing edge implies cannot
// be found — an invariant violation, not a normal outcome.
func (l *List) RemoveEdge(from, to, typ uint32) (bool, error) {
	hash := l.edges.Hash(from, to, typ)
	edge, ok := l.edges.AddressOf(hash, from, to, typ)
	if !ok {
		return false, nil // NotFound: not an error.
	}

	toNode, okTo := l.nodes.AddressOf(to, typ)
	if !okTo {
		return false, engerr.Wrap(engerr.ErrInconsistent, "no node record for to=%d type=%d", to, typ)
	}
	var fromNode uint32
	if from == to {
		fromNode = toNode
	} else {
		var okFrom bool
		fromNode, okFrom = l.nodes.AddressOf(from, typ)
		if !okFrom {
			return false, engerr.Wrap(engerr.ErrInconsistent, "no node record for from=%d type=%d", from, typ)
		}
	}

	l.nodes.UnlinkIn(toNode, edge, l.edges.PrevIn(edge), l.edges.NextIn(edge))
	l.nodes.UnlinkOut(fromNode, edge, l.edges.PrevOut(edge), l.edges.NextOut(edge))
	l.edges.Unlink(hash, edge)
	l.edges.UnlinkIn(edge)
	l.edges.UnlinkOut(edge)
	l.edges.Delete(edge)

	return true, nil
}

// resizeEdges rebuilds the edge map (and, lazily, any node records live
// edges touch) at newCap by re-adding every currently-live edge to a
// fresh List, preserving the node-id counter. This naturally drops
// tombstones and rebuilds every hash chain and intrusive list, per
// spec §4.4 (edge resize is a re-add, unlike node resize's positional
// rebase — see DESIGN.md for why the two differ).
func (l *List) resizeEdges(newCap uint32) error {
	freshNodes, err := nodemap.New(l.width, l.nodes.Capacity())
	if err != nil {
		return err
	}
	freshNodes.SeedNextID(l.nodes.NextID())

	freshEdges, err := edgemap.New(l.width, newCap)
	if err != nil {
		return err
	}

	fresh := &List{width: l.width, nodes: freshNodes, edges: freshEdges}
	want := l.edges.Count()
	var got uint32
	var addErr error
	l.edges.ForEach(func(addr uint32) bool {
		from, to, typ := l.edges.From(addr), l.edges.To(addr), l.edges.TypeOf(addr)
		ok, err := fresh.AddEdge(from, to, typ)
		if err != nil {
			addErr = err
			return false
		}
		if !ok {
			addErr = engerr.Wrap(engerr.ErrInconsistent, "edge (%d,%d,%d) collided during resize re-add", from, to, typ)
			return false
		}
		got++
		return true
	})
	if addErr != nil {
		return addErr
	}
	if got != want {
		return engerr.Wrap(engerr.ErrInconsistent, "resize re-add produced %d edges, want %d", got, want)
	}

	l.nodes = fresh.nodes
	l.edges = fresh.edges
	return nil
}

// ResizeEdges is the public form of resizeEdges (spec §6's
// resizeEdges(n)), for callers that want to pre-size the edge map
// ahead of a known bulk load.
func (l *List) ResizeEdges(n uint32) error { return l.resizeEdges(n) }

// HasEdge reports whether (from, to) is connected by an edge matching q.
func (l *List) HasEdge(from, to uint32, q TypeQuery) bool {
	if q.isSingle {
		hash := l.edges.Hash(from, to, q.single)
		_, ok := l.edges.AddressOf(hash, from, to, q.single)
		return ok
	}
	found := false
	l.nodes.Records(from, q.Matches, func(rec, _ uint32) bool {
		for e := l.nodes.FirstOut(rec); e != 0; e = l.edges.NextOut(e) {
			if l.edges.To(e) == to {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// HasInboundEdges reports whether any edge of any type targets to.
func (l *List) HasInboundEdges(to uint32) bool {
	found := false
	l.nodes.Records(to, func(uint32) bool { return true }, func(rec, _ uint32) bool {
		if l.nodes.FirstIn(rec) != 0 {
			found = true
			return false
		}
		return true
	})
	return found
}

// GetInboundEdgesByType lists every (from, type) pair with an edge
// targeting to.
func (l *List) GetInboundEdgesByType(to uint32) []Endpoint {
	var out []Endpoint
	l.nodes.Records(to, func(uint32) bool { return true }, func(rec, typ uint32) bool {
		for e := l.nodes.FirstIn(rec); e != 0; e = l.edges.NextIn(e) {
			out = append(out, Endpoint{Node: l.edges.From(e), Type: typ})
		}
		return true
	})
	return out
}

// GetOutboundEdgesByType lists every (to, type) pair with an edge
// sourced at from.
func (l *List) GetOutboundEdgesByType(from uint32) []Endpoint {
	var out []Endpoint
	l.nodes.Records(from, func(uint32) bool { return true }, func(rec, typ uint32) bool {
		for e := l.nodes.FirstOut(rec); e != 0; e = l.edges.NextOut(e) {
			out = append(out, Endpoint{Node: l.edges.To(e), Type: typ})
		}
		return true
	})
	return out
}

// GetNodeIdsConnectedTo returns the de-duplicated set of node ids u
// such that an edge (u, to) matching q exists, in inbound-list order,
// first occurrence wins.
func (l *List) GetNodeIdsConnectedTo(to uint32, q TypeQuery) []uint32 {
	seen := make(map[uint32]struct{})
	var out []uint32
	l.nodes.Records(to, q.Matches, func(rec, _ uint32) bool {
		for e := l.nodes.FirstIn(rec); e != 0; e = l.edges.NextIn(e) {
			id := l.edges.From(e)
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
		return true
	})
	return out
}

// GetNodeIdsConnectedFrom returns the de-duplicated set of node ids u
// such that an edge (from, u) matching q exists, in outbound-list
// order, first occurrence wins.
func (l *List) GetNodeIdsConnectedFrom(from uint32, q TypeQuery) []uint32 {
	seen := make(map[uint32]struct{})
	var out []uint32
	l.nodes.Records(from, q.Matches, func(rec, _ uint32) bool {
		for e := l.nodes.FirstOut(rec); e != 0; e = l.edges.NextOut(e) {
			id := l.edges.To(e)
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
		return true
	})
	return out
}

// GetAllEdges returns every live edge in buffer-scan order (spec §4.4):
// approximately insertion order, tombstones skipped.
func (l *List) GetAllEdges() []Triple {
	out := make([]Triple, 0, l.edges.Count())
	l.edges.ForEach(func(addr uint32) bool {
		out = append(out, Triple{From: l.edges.From(addr), To: l.edges.To(addr), Type: l.edges.TypeOf(addr)})
		return true
	})
	return out
}

// All is the lazy, range-over-func form of GetAllEdges (spec §9's
// "iterator as lazy sequence" design note): a finite, non-restartable
// forward sequence borrowing l for its lifetime.
func (l *List) All() func(yield func(Triple) bool) {
	return func(yield func(Triple) bool) {
		l.edges.ForEach(func(addr uint32) bool {
			return yield(Triple{From: l.edges.From(addr), To: l.edges.To(addr), Type: l.edges.TypeOf(addr)})
		})
	}
}

// OutDegree counts the outbound edges of (node, typ); 0 if no such
// record exists.
func (l *List) OutDegree(node, typ uint32) int {
	rec, ok := l.nodes.AddressOf(node, typ)
	if !ok {
		return 0
	}
	n := 0
	for e := l.nodes.FirstOut(rec); e != 0; e = l.edges.NextOut(e) {
		n++
	}
	return n
}

// InDegree counts the inbound edges of (node, typ); 0 if no such
// record exists.
func (l *List) InDegree(node, typ uint32) int {
	rec, ok := l.nodes.AddressOf(node, typ)
	if !ok {
		return 0
	}
	n := 0
	for e := l.nodes.FirstIn(rec); e != 0; e = l.edges.NextIn(e) {
		n++
	}
	return n
}

// Width reports the word width backing this List's buffers.
func (l *List) Width() wordbuf.Width { return l.width }

// Clone returns an independent deep copy of l: a fresh pair of buffers
// at l's current capacities, with the same node-id counter and the
// same live edges. Unlike Serialize/Deserialize's byte-identical
// round-trip, Clone does not preserve tombstones or physical item
// placement — it rebuilds by re-adding every live edge, the same way
// resizeEdges does.
func (l *List) Clone() (*List, error) {
	clone, err := New(WithWordWidth(l.width), WithNodeCapacity(l.nodes.Capacity()), WithEdgeCapacity(l.edges.Capacity()))
	if err != nil {
		return nil, err
	}
	clone.nodes.SeedNextID(l.nodes.NextID())

	var addErr error
	l.edges.ForEach(func(addr uint32) bool {
		_, err := clone.AddEdge(l.edges.From(addr), l.edges.To(addr), l.edges.TypeOf(addr))
		if err != nil {
			addErr = err
			return false
		}
		return true
	})
	if addErr != nil {
		return nil, addErr
	}
	return clone, nil
}

// NodeCapacity reports the node map's current bucket-table width.
func (l *List) NodeCapacity() uint32 { return l.nodes.Capacity() }

// EdgeCapacity reports the edge map's current bucket-table width.
func (l *List) EdgeCapacity() uint32 { return l.edges.Capacity() }
