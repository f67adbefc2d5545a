// Package skeleton models the joint hierarchy animations are extracted
// against. Joints are stored in depth-first order; a joint's parent always
// precedes it.
package skeleton

import (
	"fmt"

	"github.com/ivlev/scene2anim/internal/mathx"
)

// NoParent marks a root joint.
const NoParent = -1

// Joint is one skeleton joint: its name (used to match scene nodes), the
// index of its parent, and its rest-state local transform.
type Joint struct {
	Name     string
	Parent   int
	BindPose mathx.Transform
}

// Skeleton is an immutable, ordered joint hierarchy.
type Skeleton struct {
	joints []Joint
}

// New builds a skeleton from ordered joints. Every parent index must refer
// to an earlier joint or be NoParent, and names must be unique so scene
// lookup is unambiguous.
func New(joints []Joint) (*Skeleton, error) {
	seen := make(map[string]struct{}, len(joints))
	for i, j := range joints {
		if j.Name == "" {
			return nil, fmt.Errorf("joint %d: empty name", i)
		}
		if _, dup := seen[j.Name]; dup {
			return nil, fmt.Errorf("joint %d: duplicate name %q", i, j.Name)
		}
		seen[j.Name] = struct{}{}
		if j.Parent != NoParent && (j.Parent < 0 || j.Parent >= i) {
			return nil, fmt.Errorf("joint %d (%q): parent index %d out of order", i, j.Name, j.Parent)
		}
	}
	s := &Skeleton{joints: make([]Joint, len(joints))}
	copy(s.joints, joints)
	return s, nil
}

// NumJoints returns the joint count.
func (s *Skeleton) NumJoints() int { return len(s.joints) }

// JointName returns the name of joint i.
func (s *Skeleton) JointName(i int) string { return s.joints[i].Name }

// HasParent reports whether joint i has a parent joint.
func (s *Skeleton) HasParent(i int) bool { return s.joints[i].Parent != NoParent }

// Parent returns the parent index of joint i, or NoParent.
func (s *Skeleton) Parent(i int) int { return s.joints[i].Parent }

// LocalBindPose returns the rest-state local transform of joint i.
func (s *Skeleton) LocalBindPose(i int) mathx.Transform { return s.joints[i].BindPose }
