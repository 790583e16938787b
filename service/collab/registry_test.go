package collab

import (
	"testing"
)

func TestJoinAssignsColorsByJoinOrder(t *testing.T) {
	reg := NewRegistry(nil)

	reg.Join("doc1", "c1", "u1", "alice", nil)
	reg.Join("doc1", "c2", "u2", "bob", nil)
	got := reg.Join("doc1", "c3", "u3", "carol", nil)

	if len(got) != 3 {
		t.Fatalf("want 3 participants, got %d", len(got))
	}
	for i, p := range got {
		if p.Color != defaultPalette[i] {
			t.Errorf("participant %d: want color %s, got %s", i, defaultPalette[i], p.Color)
		}
	}
	// join order preserved in snapshot
	if got[0].UserName != "alice" || got[2].UserName != "carol" {
		t.Errorf("join order not preserved: %+v", got)
	}
}

func TestRejoinSameConnectionKeepsColor(t *testing.T) {
	reg := NewRegistry(nil)
	first := reg.Join("doc1", "c1", "u1", "alice", nil)
	again := reg.Join("doc1", "c1", "u1", "alice renamed", nil)

	if len(again) != 1 {
		t.Fatalf("rejoin must not duplicate member, got %d", len(again))
	}
	if again[0].Color != first[0].Color {
		t.Errorf("rejoin changed color: %s -> %s", first[0].Color, again[0].Color)
	}
	if again[0].UserName != "alice renamed" {
		t.Errorf("rejoin did not update display name: %s", again[0].UserName)
	}
}

func TestPaletteWrapsWhenRoomExceedsIt(t *testing.T) {
	reg := NewRegistry([]string{"#111111", "#222222"})
	reg.Join("doc1", "c1", "u1", "a", nil)
	reg.Join("doc1", "c2", "u2", "b", nil)
	got := reg.Join("doc1", "c3", "u3", "c", nil)

	if got[2].Color != "#111111" {
		t.Errorf("want palette to wrap, got %s", got[2].Color)
	}
}

func TestLeaveDeletesEmptyRoom(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Join("doc1", "c1", "u1", "alice", nil)
	reg.Join("doc1", "c2", "u2", "bob", nil)

	remaining, ok := reg.Leave("doc1", "c1")
	if !ok {
		t.Fatal("leave of a member must report true")
	}
	if len(remaining) != 1 || remaining[0].ConnectionID != "c2" {
		t.Fatalf("unexpected remaining members: %+v", remaining)
	}

	remaining, ok = reg.Leave("doc1", "c2")
	if !ok || len(remaining) != 0 {
		t.Fatalf("last leave: ok=%v remaining=%+v", ok, remaining)
	}
	if reg.RoomCount() != 0 {
		t.Errorf("empty room must be deleted, rooms=%d", reg.RoomCount())
	}
}

func TestLeaveNonMemberIsNoOp(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Join("doc1", "c1", "u1", "alice", nil)

	if _, ok := reg.Leave("doc1", "ghost"); ok {
		t.Error("leave of a non-member must report false")
	}
	if _, ok := reg.Leave("nosuchdoc", "c1"); ok {
		t.Error("leave of an unknown room must report false")
	}
	if len(reg.MembersOf("doc1")) != 1 {
		t.Error("no-op leave must not touch membership")
	}
}

func TestUpdateCursor(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Join("doc1", "c1", "u1", "alice", nil)

	color, ok := reg.UpdateCursor("doc1", "c1", &CursorPosition{X: 10, Y: 20})
	if !ok || color != defaultPalette[0] {
		t.Fatalf("UpdateCursor: ok=%v color=%s", ok, color)
	}
	members := reg.MembersOf("doc1")
	if members[0].Cursor == nil || members[0].Cursor.X != 10 {
		t.Errorf("cursor not recorded: %+v", members[0].Cursor)
	}

	if _, ok := reg.UpdateCursor("doc1", "ghost", &CursorPosition{}); ok {
		t.Error("cursor update for a non-member must report false")
	}
}

func TestClientsOfExcludesConnection(t *testing.T) {
	reg := NewRegistry(nil)
	a := &Client{ConnID: "c1"}
	b := &Client{ConnID: "c2"}
	reg.Join("doc1", "c1", "u1", "alice", a)
	reg.Join("doc1", "c2", "u2", "bob", b)

	got := reg.ClientsOf("doc1", "c1")
	if len(got) != 1 || got[0] != b {
		t.Fatalf("want only c2, got %d clients", len(got))
	}
	if len(reg.ClientsOf("doc1", "")) != 2 {
		t.Error("empty exclusion must return the full room")
	}
}
