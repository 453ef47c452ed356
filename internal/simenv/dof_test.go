package simenv

import (
	"math"
	"testing"
)

func TestDOFLayoutIndexMapping(t *testing.T) {
	l := NewDOFLayout(6, 3)

	if l.NumDOFs() != 9 {
		t.Fatalf("expected 9 DOFs, got %d", l.NumDOFs())
	}
	if l.NumBaseDOFs() != 6 || l.NumJoints() != 3 {
		t.Fatalf("unexpected split: base=%d joints=%d", l.NumBaseDOFs(), l.NumJoints())
	}

	for joint := 0; joint < l.NumJoints(); joint++ {
		dof := l.DOFIndex(joint)
		back, ok := l.JointIndex(dof)
		if !ok || back != joint {
			t.Errorf("joint %d -> dof %d -> joint %d (ok=%v)", joint, dof, back, ok)
		}
	}
}

func TestDOFLayoutJointIndexRejectsBaseAndOutOfRange(t *testing.T) {
	l := NewDOFLayout(6, 2)

	tests := []struct {
		name string
		dof  int
	}{
		{"negative", -1},
		{"base dof", 0},
		{"last base dof", 5},
		{"past end", 8},
	}
	for _, tc := range tests {
		if _, ok := l.JointIndex(tc.dof); ok {
			t.Errorf("%s: expected no joint for dof %d", tc.name, tc.dof)
		}
	}
}

func TestDOFLayoutStaticObjectMapsOneToOne(t *testing.T) {
	l := NewDOFLayout(0, 4)
	for dof := 0; dof < 4; dof++ {
		joint, ok := l.JointIndex(dof)
		if !ok || joint != dof {
			t.Errorf("dof %d: expected joint %d, got %d (ok=%v)", dof, dof, joint, ok)
		}
	}
}

func TestDOFLayoutLimitsFollowRequestOrder(t *testing.T) {
	l := NewDOFLayout(0, 3)
	l.SetJointLimits(0, Limits{-1, 1}, Limits{-10, 10}, Unbounded())
	l.SetJointLimits(1, Limits{-2, 2}, Limits{-20, 20}, Unbounded())
	l.SetJointLimits(2, Limits{-3, 3}, Limits{-30, 30}, Unbounded())

	rows := l.PositionLimits([]int{2, 0})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Min != -3 || rows[1].Min != -1 {
		t.Errorf("rows out of request order: %+v", rows)
	}

	vel := l.VelocityLimits([]int{1})
	if vel[0].Max != 20 {
		t.Errorf("expected velocity max 20, got %f", vel[0].Max)
	}
}

func TestDOFLayoutUnboundedReportsExtremes(t *testing.T) {
	l := NewDOFLayout(0, 1)
	rows := l.AccelerationLimits([]int{0})
	if rows[0].Min != -math.MaxFloat64 || rows[0].Max != math.MaxFloat64 {
		t.Errorf("expected float64 extremes, got %+v", rows[0])
	}
	if !rows[0].IsUnbounded() {
		t.Error("expected IsUnbounded")
	}
}

func TestDOFInfo(t *testing.T) {
	l := NewDOFLayout(2, 1)
	l.SetJointLimits(0, Limits{-1, 1}, Limits{-5, 5}, Limits{-50, 50})

	info, ok := l.Info(2)
	if !ok {
		t.Fatal("expected info for dof 2")
	}
	if info.Index != 2 || info.PositionLimits.Max != 1 || info.VelocityLimits.Max != 5 {
		t.Errorf("unexpected info: %+v", info)
	}

	if _, ok := l.Info(3); ok {
		t.Error("expected no info past the last dof")
	}
}
