package lattice

import "testing"

func TestCursorIteratesEveryMatchingRowOnce(t *testing.T) {
	s := NewStore()
	want := map[EntityID]bool{}
	for i := 0; i < 5; i++ {
		e := s.CreateEntity()
		Attach(s, e, compA{V: i})
		want[e] = true
	}
	// one entity without A must not be visited
	other := s.CreateEntity()
	Attach(s, other, compB{V: 1})

	node := NewQuery().And(TypesOf1[compA](s))
	cursor := NewCursor(node, s)

	seen := map[EntityID]bool{}
	for cursor.Next() {
		e := cursor.CurrentEntity()
		if seen[e] {
			t.Fatalf("entity %v visited more than once", e)
		}
		seen[e] = true
	}

	if len(seen) != len(want) {
		t.Fatalf("visited %d entities, want %d", len(seen), len(want))
	}
	for e := range want {
		if !seen[e] {
			t.Errorf("entity %v was never visited", e)
		}
	}
	if seen[other] {
		t.Error("entity lacking the queried component should not be visited")
	}
}

func TestCursorTotalMatchedDoesNotConsumeIteration(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		e := s.CreateEntity()
		Attach(s, e, compA{V: i})
	}
	node := NewQuery().And(TypesOf1[compA](s))
	cursor := NewCursor(node, s)

	if total := cursor.TotalMatched(); total != 3 {
		t.Fatalf("TotalMatched() = %d, want 3", total)
	}

	count := 0
	for cursor.Next() {
		count++
	}
	if count != 3 {
		t.Fatalf("iterated %d rows after TotalMatched, want 3", count)
	}
}

func TestCursorColumnsRejectsDuplicateType(t *testing.T) {
	s := NewStore()
	e := s.CreateEntity()
	Attach(s, e, compA{V: 1})
	aT := ComponentTypeFor[compA](s)

	node := NewQuery().And(TypesOf1[compA](s))
	cursor := NewCursor(node, s)
	cursor.Next()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic requesting the same component type twice")
		}
	}()
	CursorColumns(cursor, []ComponentType{aT, aT})
}

func TestCursorEntityAtOffset(t *testing.T) {
	s := NewStore()
	e1 := s.CreateEntity()
	e2 := s.CreateEntity()
	Attach(s, e1, compA{V: 1})
	Attach(s, e2, compA{V: 2})

	node := NewQuery().And(TypesOf1[compA](s))
	cursor := NewCursor(node, s)
	cursor.Next()

	if _, ok := cursor.EntityAtOffset(-1); ok {
		t.Error("offset before row 0 should be out of range")
	}
	if next, ok := cursor.EntityAtOffset(1); !ok {
		t.Error("offset 1 should resolve to the second row")
	} else if next != e1 && next != e2 {
		t.Errorf("unexpected entity at offset 1: %v", next)
	}
}
