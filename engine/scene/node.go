package scene

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// Transform is a node's local placement relative to its parent.
// The local matrix is T * R(Rotation, Y*X*Z) * Orientation * S.
type Transform struct {
	Position mgl32.Vec3
	// Rotation holds Euler angles in radians; Rotation[1] is the yaw about +Y.
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	// Orientation is a base rotation, typically imported from a model file.
	Orientation mgl32.Quat
}

// IdentityTransform returns a transform with unit scale and no rotation or offset.
func IdentityTransform() Transform {
	return Transform{
		Scale:       mgl32.Vec3{1, 1, 1},
		Orientation: mgl32.QuatIdent(),
	}
}

// Matrix returns the local transformation matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(common.EulerYXZ(t.Rotation)).
		Mul4(t.Orientation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Node is an element of the scene graph. A node owns its Transform and its
// children; its Mesh, when set, is shared geometry and is never copied.
//
// Nodes are not safe for concurrent mutation. The engine only touches the
// graph from the frame loop.
type Node struct {
	Name      string
	Transform Transform
	Visible   bool
	// Tint multiplies the mesh base color of this node only.
	Tint common.Color
	// Tags is free-form metadata copied along with the node.
	Tags map[string]string

	mesh     model.Mesh
	parent   *Node
	children []*Node
}

// NewNode creates a visible, untinted node with an identity transform.
//
// Parameters:
//   - name: the node name
//   - options: functional options
//
// Returns:
//   - *Node: the new node
func NewNode(name string, options ...NodeBuilderOption) *Node {
	n := &Node{
		Name:      name,
		Transform: IdentityTransform(),
		Visible:   true,
		Tint:      common.Color{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

// NewGroup creates an empty node used purely to parent other nodes.
func NewGroup(name string) *Node {
	return NewNode(name)
}

// Mesh returns the node's geometry, or nil for groups.
func (n *Node) Mesh() model.Mesh {
	return n.mesh
}

// SetMesh attaches shared geometry to the node.
func (n *Node) SetMesh(m model.Mesh) {
	n.mesh = m
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th direct child.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Add attaches child to n, detaching it from any previous parent first.
// Adding a node to itself or to one of its own descendants is ignored.
//
// Parameters:
//   - child: the node to attach
func (n *Node) Add(child *Node) {
	if child == nil || child == n || child.IsAncestorOf(n) {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Unknown nodes are ignored.
//
// Parameters:
//   - child: the node to detach
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// IsAncestorOf reports whether n appears on other's parent chain.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// SetPosition sets the local position.
func (n *Node) SetPosition(x, y, z float32) {
	n.Transform.Position = mgl32.Vec3{x, y, z}
}

// Yaw returns the local rotation about +Y in radians.
func (n *Node) Yaw() float32 {
	return n.Transform.Rotation[1]
}

// SetYaw sets the local rotation about +Y in radians.
func (n *Node) SetYaw(rad float32) {
	n.Transform.Rotation[1] = rad
}

// AddYaw rotates the node about its local +Y axis by rad radians.
func (n *Node) AddYaw(rad float32) {
	n.Transform.Rotation[1] += rad
}

// LocalMatrix returns the node's local transformation matrix.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	return n.Transform.Matrix()
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Walk visits n and its descendants depth-first with their world matrices.
// Returning false from fn skips the visited node's children. Hidden nodes and
// their subtrees are not visited.
//
// Parameters:
//   - fn: visitor receiving each node and its world matrix
func (n *Node) Walk(fn func(node *Node, world mgl32.Mat4) bool) {
	var parentWorld mgl32.Mat4
	if n.parent != nil {
		parentWorld = n.parent.WorldMatrix()
	} else {
		parentWorld = mgl32.Ident4()
	}
	n.walk(parentWorld, fn)
}

func (n *Node) walk(parentWorld mgl32.Mat4, fn func(*Node, mgl32.Mat4) bool) {
	if !n.Visible {
		return
	}
	world := parentWorld.Mul4(n.LocalMatrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n, including n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}

// Find returns the first node named name in the subtree rooted at n, depth-first.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Clone returns a detached copy of n. Exported fields are deep copied, so the
// clone owns its Transform and Tags; the Mesh is shared. With deep set the
// whole subtree is cloned, otherwise the clone has no children.
//
// Parameters:
//   - deep: whether to clone descendants
//
// Returns:
//   - *Node: the new, parentless node
func (n *Node) Clone(deep bool) *Node {
	c := &Node{}
	if err := copier.CopyWithOption(c, n, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("scene.Node.Clone", "node", n.Name, "err", err)
		c.Name, c.Transform, c.Visible, c.Tint = n.Name, n.Transform, n.Visible, n.Tint
	}
	// copier may carry unexported fields over by assignment; hierarchy links never transfer.
	c.mesh, c.parent, c.children = n.mesh, nil, nil
	if deep {
		for _, child := range n.children {
			c.Add(child.Clone(true))
		}
	}
	return c
}
