package skeleton

import (
	"testing"

	"github.com/ivlev/scene2anim/internal/mathx"
)

func TestNew(t *testing.T) {
	skel, err := New([]Joint{
		{Name: "hips", Parent: NoParent, BindPose: mathx.Identity()},
		{Name: "spine", Parent: 0, BindPose: mathx.Identity()},
		{Name: "head", Parent: 1, BindPose: mathx.Identity()},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if skel.NumJoints() != 3 {
		t.Fatalf("NumJoints = %d, want 3", skel.NumJoints())
	}
	if skel.HasParent(0) {
		t.Error("root reported a parent")
	}
	if !skel.HasParent(2) || skel.Parent(2) != 1 {
		t.Errorf("head parent = %d, want 1", skel.Parent(2))
	}
	if skel.JointName(1) != "spine" {
		t.Errorf("JointName(1) = %q", skel.JointName(1))
	}
}

func TestNewRejectsBadHierarchies(t *testing.T) {
	cases := []struct {
		name   string
		joints []Joint
	}{
		{"empty name", []Joint{{Name: ""}}},
		{"duplicate name", []Joint{{Name: "a", Parent: NoParent}, {Name: "a", Parent: 0}}},
		{"self parent", []Joint{{Name: "a", Parent: 0}}},
		{"forward parent", []Joint{{Name: "a", Parent: 1}, {Name: "b", Parent: NoParent}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.joints); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewCopiesJoints(t *testing.T) {
	joints := []Joint{{Name: "hips", Parent: NoParent, BindPose: mathx.Identity()}}
	skel, err := New(joints)
	if err != nil {
		t.Fatal(err)
	}
	joints[0].Name = "mutated"
	if skel.JointName(0) != "hips" {
		t.Error("skeleton shares caller's slice")
	}
}
