package scene

import (
	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node via NewNode.
type NodeBuilderOption func(*Node)

// WithMesh attaches shared geometry to the node.
//
// Parameters:
//   - m: the mesh
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMesh(m model.Mesh) NodeBuilderOption {
	return func(n *Node) {
		n.mesh = m
	}
}

// WithPosition sets the local position.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *Node) {
		n.Transform.Position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the local Euler rotation in radians.
//
// Parameters:
//   - x, y, z: pitch, yaw and roll
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(x, y, z float32) NodeBuilderOption {
	return func(n *Node) {
		n.Transform.Rotation = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the local scale.
//
// Parameters:
//   - x, y, z: the scale factors
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithScale(x, y, z float32) NodeBuilderOption {
	return func(n *Node) {
		n.Transform.Scale = mgl32.Vec3{x, y, z}
	}
}

// WithOrientation sets the base orientation quaternion.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithOrientation(q mgl32.Quat) NodeBuilderOption {
	return func(n *Node) {
		n.Transform.Orientation = q
	}
}

// WithTint sets the per-node color multiplier.
//
// Parameters:
//   - c: the tint
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithTint(c common.Color) NodeBuilderOption {
	return func(n *Node) {
		n.Tint = c
	}
}

// WithTag sets one metadata entry.
//
// Parameters:
//   - key, value: the tag
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithTag(key, value string) NodeBuilderOption {
	return func(n *Node) {
		if n.Tags == nil {
			n.Tags = make(map[string]string)
		}
		n.Tags[key] = value
	}
}

// WithChildren attaches the given nodes as children.
//
// Parameters:
//   - children: the nodes to attach
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithChildren(children ...*Node) NodeBuilderOption {
	return func(n *Node) {
		for _, c := range children {
			n.Add(c)
		}
	}
}
