package rtti

import (
	"context"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"golang.org/x/sync/errgroup"
)

// Hierarchy is a read-only graph snapshot of the types known to a Registry.
// Edges point from a parent type to the types that extend it.
type Hierarchy struct {
	nodes   *hashMap[*TypeNode]
	edges   int
	gviz    *graphviz.Graphviz
	viz     *cgraph.Graph
	mu      sync.RWMutex
	options *hierarchyOpts
}

type hierarchyOpts struct {
	vizualize bool
}

// HierarchyOpt is an option for configuring a Hierarchy
type HierarchyOpt func(*hierarchyOpts)

// WithVizualization enables graphviz visualization on the Hierarchy
func WithVizualization() HierarchyOpt {
	return func(opts *hierarchyOpts) {
		opts.vizualize = true
	}
}

// TypeNode is a type in the hierarchy
type TypeNode struct {
	descriptor *Descriptor
	parent     *TypeNode
	children   *hashMap[*TypeNode]
	hierarchy  *Hierarchy
	node       *cgraph.Node
}

// NewHierarchy builds a Hierarchy from every type registered in r.
// Ancestors that are not registered are still added so that every chain reaches its root.
// Two distinct descriptors sharing a name yield ErrDuplicateType.
func NewHierarchy(r *Registry, opts ...HierarchyOpt) (*Hierarchy, error) {
	options := &hierarchyOpts{}
	for _, opt := range opts {
		opt(options)
	}
	h := &Hierarchy{
		nodes:   newHashMap[*TypeNode](),
		options: options,
	}
	if options.vizualize {
		h.gviz = graphviz.New()
		graph, err := h.gviz.Graph()
		if err != nil {
			return nil, err
		}
		h.viz = graph
	}
	for _, d := range r.Descriptors() {
		if _, err := h.addType(d); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hierarchy) addType(d *Descriptor) (*TypeNode, error) {
	if existing, ok := h.nodes.Get(d.name); ok {
		if existing.descriptor != d {
			return nil, fmt.Errorf("%w: %s is described twice", ErrDuplicateType, d.name)
		}
		return existing, nil
	}
	n := &TypeNode{
		descriptor: d,
		children:   newHashMap[*TypeNode](),
		hierarchy:  h,
	}
	h.nodes.Set(d.name, n)
	if h.options.vizualize {
		gn, err := h.viz.CreateNode(d.name)
		if err != nil {
			return nil, err
		}
		gn.SetLabel(d.name)
		if d.Abstract() {
			gn.SetColor("gray")
		}
		n.node = gn
	}
	if d.parent == nil {
		return n, nil
	}
	parent, err := h.addType(d.parent)
	if err != nil {
		return nil, err
	}
	n.parent = parent
	parent.children.Set(d.name, n)
	h.edges++
	if h.options.vizualize {
		ge, err := h.viz.CreateEdge(fmt.Sprintf("%s-(extends)-%s", parent.Name(), d.name), parent.node, n.node)
		if err != nil {
			return nil, err
		}
		ge.SetLabel("extends")
	}
	return n, nil
}

// GetNode returns the node of the type with the given name
func (h *Hierarchy) GetNode(name string) (*TypeNode, bool) {
	return h.nodes.Get(name)
}

// Size returns the number of types and extends relationships in the hierarchy
func (h *Hierarchy) Size() (int, int) {
	return h.nodes.Len(), h.edges
}

// Nodes returns every node ordered by type name
func (h *Hierarchy) Nodes() []*TypeNode {
	return h.nodes.Values()
}

// Roots returns the nodes without a parent ordered by type name
func (h *Hierarchy) Roots() []*TypeNode {
	var roots []*TypeNode
	for _, n := range h.nodes.Values() {
		if n.parent == nil {
			roots = append(roots, n)
		}
	}
	return roots
}

// SearchFunc is called on each node visited during a search. Returning false stops the search.
type SearchFunc func(ctx context.Context, node *TypeNode) bool

// BFS visits the descendants of start in level order, start excluded.
func (h *Hierarchy) BFS(ctx context.Context, start *TypeNode, fn SearchFunc) error {
	visited := newSet[string]()
	visited.Add(start.Name())
	queue := start.Children()
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := queue[0]
		queue = queue[1:]
		if visited.Contains(next.Name()) {
			continue
		}
		visited.Add(next.Name())
		if !fn(ctx, next) {
			return nil
		}
		queue = append(queue, next.Children()...)
	}
	return nil
}

// Each calls fn concurrently on every node, with at most limit calls in flight (no limit if limit <= 0).
// The first error cancels the context handed to the remaining calls and is returned.
func (h *Hierarchy) Each(ctx context.Context, limit int, fn func(ctx context.Context, node *TypeNode) error) error {
	egp, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		egp.SetLimit(limit)
	}
	for _, n := range h.nodes.Values() {
		n := n
		egp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, n)
		})
	}
	return egp.Wait()
}

// Acyclic returns true if no parent chain in the hierarchy loops back on itself.
func (h *Hierarchy) Acyclic() bool {
	isAcyclic := true
	h.nodes.Range(func(key string, node *TypeNode) bool {
		onChain := newSet[string]()
		for cur := node; cur != nil; cur = cur.parent {
			if onChain.Contains(cur.Name()) {
				isAcyclic = false
				return false
			}
			onChain.Add(cur.Name())
		}
		return true
	})
	return isAcyclic
}

// TopologicalSort returns every node with parents ahead of the types extending them.
// If reverse is true, leaves come first.
func (h *Hierarchy) TopologicalSort(reverse bool) ([]*TypeNode, error) {
	if !h.Acyclic() {
		return nil, fmt.Errorf("topological sort cannot be computed on a cyclical hierarchy")
	}
	stack := newStack[*TypeNode]()
	permanent := newSet[string]()
	temporary := newSet[string]()
	for _, node := range h.nodes.Values() {
		if err := h.topology(stack, node, permanent, temporary); err != nil {
			return nil, err
		}
	}
	var sorted []*TypeNode
	for stack.Len() > 0 {
		val, _ := stack.Pop()
		sorted = append(sorted, val)
	}
	if reverse {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}
	return sorted, nil
}

func (h *Hierarchy) topology(sorted *stack[*TypeNode], node *TypeNode, permanent, temporary *set[string]) error {
	if permanent.Contains(node.Name()) {
		return nil
	}
	if temporary.Contains(node.Name()) {
		return fmt.Errorf("type %s is its own ancestor", node.Name())
	}
	temporary.Add(node.Name())
	for _, child := range node.Children() {
		if err := h.topology(sorted, child, permanent, temporary); err != nil {
			return err
		}
	}
	temporary.Remove(node.Name())
	permanent.Add(node.Name())
	sorted.Push(node)
	return nil
}

// GraphViz returns a graphviz image of the hierarchy
func (h *Hierarchy) GraphViz() (image.Image, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.viz == nil {
		return nil, fmt.Errorf("graphviz not configured")
	}
	return h.gviz.RenderImage(h.viz)
}

// Render writes the hierarchy to w in the given graphviz format, e.g. graphviz.XDOT or graphviz.SVG
func (h *Hierarchy) Render(w io.Writer, format graphviz.Format) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.viz == nil {
		return fmt.Errorf("graphviz not configured")
	}
	return h.gviz.Render(h.viz, format, w)
}

// Close releases the graphviz resources held by the hierarchy
func (h *Hierarchy) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.viz == nil {
		return nil
	}
	if err := h.viz.Close(); err != nil {
		return err
	}
	h.viz = nil
	return h.gviz.Close()
}

// Descriptor returns the descriptor of the type
func (n *TypeNode) Descriptor() *Descriptor {
	return n.descriptor
}

// Name returns the type name
func (n *TypeNode) Name() string {
	return n.descriptor.name
}

// Parent returns the node of the parent type or nil at a root
func (n *TypeNode) Parent() *TypeNode {
	return n.parent
}

// Children returns the types directly extending n, ordered by name
func (n *TypeNode) Children() []*TypeNode {
	return n.children.Values()
}

// IsLeaf returns true if no type extends n
func (n *TypeNode) IsLeaf() bool {
	return n.children.Len() == 0
}

// Hierarchy returns the hierarchy the node belongs to
func (n *TypeNode) Hierarchy() *Hierarchy {
	return n.hierarchy
}

// Ancestors iterates over the parent chain, nearest first, until fn returns false
func (n *TypeNode) Ancestors(fn func(node *TypeNode) bool) {
	for cur := n.parent; cur != nil; cur = cur.parent {
		if !fn(cur) {
			return
		}
	}
}

// Descendants iterates depth first over every type extending n, directly or not, until fn returns false
func (n *TypeNode) Descendants(fn func(node *TypeNode) bool) {
	visited := make(map[string]bool)
	n.descendants(visited, fn)
}

func (n *TypeNode) descendants(visited map[string]bool, fn func(node *TypeNode) bool) bool {
	for _, child := range n.Children() {
		if visited[child.Name()] {
			continue
		}
		visited[child.Name()] = true
		if !fn(child) {
			return false
		}
		if !child.descendants(visited, fn) {
			return false
		}
	}
	return true
}

// String returns a string representation of the node
func (n *TypeNode) String() string {
	return fmt.Sprintf("TypeNode:%s", n.descriptor)
}
