package app

import (
	"reflect"
	"testing"

	"github.com/dkeye/Parley/internal/domain"
)

func TestRoomTableJoinIdempotent(t *testing.T) {
	table := NewRoomTable()

	if added := table.Join("sports", "alice"); !added {
		t.Error("first join should report newly added")
	}
	if added := table.Join("sports", "alice"); added {
		t.Error("duplicate join should not report newly added")
	}

	members := table.MembersOf("sports")
	if len(members) != 1 || members[0] != "alice" {
		t.Errorf("MembersOf = %v, want [alice]", members)
	}
}

func TestRoomTableMembersSorted(t *testing.T) {
	table := NewRoomTable()
	for _, u := range []string{"carol", "alice", "bob"} {
		table.Join("sports", u)
	}

	got := table.MembersOf("sports")
	want := []string{"alice", "bob", "carol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MembersOf = %v, want %v", got, want)
	}
}

func TestRoomTableEmptyRoomRemoved(t *testing.T) {
	table := NewRoomTable()
	table.Join("sports", "alice")
	table.Join("sports", "bob")

	table.Leave("sports", "alice")
	if len(table.MembersOf("sports")) != 1 {
		t.Fatal("room should still have one member")
	}

	table.Leave("sports", "bob")
	if len(table.MembersOf("sports")) != 0 {
		t.Error("room should be empty after last leave")
	}
	if len(table.List()) != 0 {
		t.Error("empty room must not appear in List()")
	}
}

func TestRoomTableLeaveNoOp(t *testing.T) {
	table := NewRoomTable()
	table.Join("sports", "alice")

	// Unknown room and non-member must both be silent no-ops.
	table.Leave("nosuch", "alice")
	table.Leave("sports", "bob")

	if members := table.MembersOf("sports"); len(members) != 1 {
		t.Errorf("MembersOf = %v, want [alice]", members)
	}
}

func TestRoomTableList(t *testing.T) {
	table := NewRoomTable()
	table.Join("sports", "alice")
	table.Join("sports", "bob")
	table.Join("devops", "carol")

	got := table.List()
	want := []RoomInfo{
		{Name: domain.RoomName("devops"), MemberCount: 1},
		{Name: domain.RoomName("sports"), MemberCount: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List = %v, want %v", got, want)
	}
}

func TestRoomTableHas(t *testing.T) {
	table := NewRoomTable()
	table.Join("sports", "alice")

	if !table.Has("sports", "alice") {
		t.Error("Has should report membership")
	}
	if table.Has("sports", "bob") {
		t.Error("Has should not report non-member")
	}
	if table.Has("nosuch", "alice") {
		t.Error("Has should not report unknown room")
	}
}
