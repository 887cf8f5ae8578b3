package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"etl-tycoon/internal/model"
)

var (
	// ErrBlockExists is returned when adding a block whose ID is taken.
	ErrBlockExists = errors.New("block ID already exists")
	// ErrBlockNotFound is returned when removing an unknown block.
	ErrBlockNotFound = errors.New("block not found")
	// ErrConnectionNotFound is returned when removing an unknown connection.
	ErrConnectionNotFound = errors.New("connection not found")
	// ErrCyclicGraph is returned by TopologicalOrder on cyclic graphs.
	ErrCyclicGraph = errors.New("graph contains a cycle")
)

// PipelineGraph owns the blocks and connections of one pipeline under
// construction. Derived views (adjacency, sources, sinks, topological
// order) are recomputed on demand so they can never go stale.
//
// The graph itself is not safe for concurrent mutation; one graph belongs
// to one editing session and the session store serializes access.
type PipelineGraph struct {
	blocks map[string]model.Block
	order  []string // block IDs in insertion order, for deterministic output
	conns  []model.Connection
}

// New returns an empty pipeline graph.
func New() *PipelineGraph {
	return &PipelineGraph{blocks: make(map[string]model.Block)}
}

// FromSpec builds a graph from its descriptor form. Blocks are validated
// on entry (configuration errors are fatal here, per the error taxonomy);
// connections are taken as-is and left to the validator.
func FromSpec(spec model.PipelineSpec) (*PipelineGraph, error) {
	g := New()
	for _, b := range spec.Blocks {
		if err := g.AddBlock(b); err != nil {
			return nil, err
		}
	}
	for _, c := range spec.Connections {
		if _, err := g.AddConnection(c); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ToSpec returns the descriptor form of the graph. Round-tripping through
// FromSpec yields a graph with identical validation and simulation output.
func (g *PipelineGraph) ToSpec() model.PipelineSpec {
	spec := model.PipelineSpec{
		Blocks:      g.Blocks(),
		Connections: g.Connections(),
	}
	return spec
}

// AddBlock inserts a validated block. Duplicate IDs are rejected.
func (g *PipelineGraph) AddBlock(b model.Block) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, ok := g.blocks[b.ID]; ok {
		return fmt.Errorf("%w: %s", ErrBlockExists, b.ID)
	}
	g.blocks[b.ID] = b
	g.order = append(g.order, b.ID)
	return nil
}

// UpdateBlockConfig replaces a block's configuration, re-validating it.
func (g *PipelineGraph) UpdateBlockConfig(id string, cfg map[string]interface{}) error {
	b, ok := g.blocks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	b.Configuration = cfg
	if err := b.Validate(); err != nil {
		return err
	}
	g.blocks[id] = b
	return nil
}

// RemoveBlock deletes a block and cascades to every incident connection.
func (g *PipelineGraph) RemoveBlock(id string) error {
	if _, ok := g.blocks[id]; !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	delete(g.blocks, id)
	for i, bid := range g.order {
		if bid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	kept := g.conns[:0]
	for _, c := range g.conns {
		if c.SourceID != id && c.TargetID != id {
			kept = append(kept, c)
		}
	}
	g.conns = kept
	return nil
}

// AddConnection appends a connection, assigning an ID when none is given.
// Dangling endpoint references are accepted here; the validator reports
// them as findings.
func (g *PipelineGraph) AddConnection(c model.Connection) (model.Connection, error) {
	kind, err := model.ParseConnectionKind(string(c.Kind))
	if err != nil {
		return model.Connection{}, err
	}
	c.Kind = kind
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	g.conns = append(g.conns, c)
	return c, nil
}

// RemoveConnection deletes a connection by ID.
func (g *PipelineGraph) RemoveConnection(id string) error {
	for i, c := range g.conns {
		if c.ID == id {
			g.conns = append(g.conns[:i], g.conns[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrConnectionNotFound, id)
}

// Block returns a block by ID.
func (g *PipelineGraph) Block(id string) (model.Block, bool) {
	b, ok := g.blocks[id]
	return b, ok
}

// Blocks returns all blocks in insertion order.
func (g *PipelineGraph) Blocks() []model.Block {
	out := make([]model.Block, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.blocks[id])
	}
	return out
}

// BlockIDs returns all block IDs in insertion order.
func (g *PipelineGraph) BlockIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Connections returns a copy of the connection list in insertion order.
func (g *PipelineGraph) Connections() []model.Connection {
	out := make([]model.Connection, len(g.conns))
	copy(out, g.conns)
	return out
}

// Size returns the number of blocks.
func (g *PipelineGraph) Size() int {
	return len(g.blocks)
}

// Adjacency returns block ID → target IDs over DATA_FLOW edges only.
// Edges referencing unknown blocks are skipped.
func (g *PipelineGraph) Adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.blocks))
	for _, id := range g.order {
		adj[id] = nil
	}
	for _, c := range g.conns {
		if c.Kind != model.KindDataFlow {
			continue
		}
		if _, ok := g.blocks[c.SourceID]; !ok {
			continue
		}
		if _, ok := g.blocks[c.TargetID]; !ok {
			continue
		}
		adj[c.SourceID] = append(adj[c.SourceID], c.TargetID)
	}
	return adj
}

// ReverseAdjacency returns block ID → source IDs over DATA_FLOW edges.
func (g *PipelineGraph) ReverseAdjacency() map[string][]string {
	rev := make(map[string][]string, len(g.blocks))
	for _, id := range g.order {
		rev[id] = nil
	}
	for src, targets := range g.Adjacency() {
		for _, dst := range targets {
			rev[dst] = append(rev[dst], src)
		}
	}
	return rev
}

// Sources returns blocks with no incoming DATA_FLOW edge, in insertion
// order.
func (g *PipelineGraph) Sources() []string {
	rev := g.ReverseAdjacency()
	var out []string
	for _, id := range g.order {
		if len(rev[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Sinks returns blocks with no outgoing DATA_FLOW edge, in insertion
// order.
func (g *PipelineGraph) Sinks() []string {
	adj := g.Adjacency()
	var out []string
	for _, id := range g.order {
		if len(adj[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// TopologicalOrder returns every block ID such that each DATA_FLOW edge
// source precedes its target. Iterative DFS post-order, reversed; an
// explicit stack is used so hostile graph sizes cannot exhaust the call
// stack. Returns ErrCyclicGraph when no such order exists.
func (g *PipelineGraph) TopologicalOrder() ([]string, error) {
	adj := g.Adjacency()

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(g.blocks))
	postorder := make([]string, 0, len(g.blocks))

	type frame struct {
		id   string
		next int
	}

	for _, start := range g.order {
		if state[start] != unvisited {
			continue
		}
		stack := []frame{{id: start}}
		state[start] = inStack
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			targets := adj[top.id]
			if top.next < len(targets) {
				child := targets[top.next]
				top.next++
				switch state[child] {
				case unvisited:
					state[child] = inStack
					stack = append(stack, frame{id: child})
				case inStack:
					return nil, fmt.Errorf("%w: %s -> %s", ErrCyclicGraph, top.id, child)
				}
				continue
			}
			state[top.id] = done
			postorder = append(postorder, top.id)
			stack = stack[:len(stack)-1]
		}
	}

	// reverse the post-order
	for i, j := 0, len(postorder)-1; i < j; i, j = i+1, j-1 {
		postorder[i], postorder[j] = postorder[j], postorder[i]
	}
	return postorder, nil
}

// FindCycle looks for one cycle over DATA_FLOW edges and returns the edge
// that closes it. Same iterative DFS as TopologicalOrder; only the first
// cycle is reported.
func (g *PipelineGraph) FindCycle() (from, to string, found bool) {
	adj := g.Adjacency()
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(g.blocks))
	type frame struct {
		id   string
		next int
	}
	for _, start := range g.order {
		if state[start] != unvisited {
			continue
		}
		stack := []frame{{id: start}}
		state[start] = inStack
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			targets := adj[top.id]
			if top.next < len(targets) {
				child := targets[top.next]
				top.next++
				switch state[child] {
				case unvisited:
					state[child] = inStack
					stack = append(stack, frame{id: child})
				case inStack:
					return top.id, child, true
				}
				continue
			}
			state[top.id] = done
			stack = stack[:len(stack)-1]
		}
	}
	return "", "", false
}
