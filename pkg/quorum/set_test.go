package quorum

import "testing"

func TestSetUnionContainsBothOperands(t *testing.T) {
	a := NewSet("x", "y")
	b := NewSet("y", "z")
	u := a.Union(b)

	for _, x := range []string{"x", "y", "z"} {
		if !u.Contains(x) {
			t.Errorf("expected union to contain %q", x)
		}
	}
	if len(u) != 3 {
		t.Errorf("expected union size 3, got %d", len(u))
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	a := NewSet("x")
	clone := a.Clone()
	clone.Add("y")

	if a.Contains("y") {
		t.Error("mutating a clone should not affect the original set")
	}
}
