package ecs

import "testing"

type testEvent struct{ payload int }

func (testEvent) Type() EventType { return "test" }

func TestEntityIDsAreNotReused(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	w.RemoveEntity(a.ID)
	b := w.CreateEntity()

	if a.ID == b.ID {
		t.Fatalf("expected fresh id after removal, both are %d", a.ID)
	}
	if w.Exists(a.ID) {
		t.Fatalf("removed entity still exists")
	}
	if w.Count() != 1 {
		t.Fatalf("expected 1 entity, got %d", w.Count())
	}
}

func TestRemoveEntityCascadesToChildren(t *testing.T) {
	w := NewWorld()
	root := w.CreateEntity()
	child := w.CreateEntity()
	grandchild := w.CreateEntity()
	w.SetParent(child.ID, root.ID)
	w.SetParent(grandchild.ID, child.ID)
	w.TagEntity(grandchild.ID, "enemy")

	w.RemoveEntity(child.ID)

	if w.Exists(child.ID) || w.Exists(grandchild.ID) {
		t.Fatalf("expected child subtree to be removed")
	}
	if !w.Exists(root.ID) {
		t.Fatalf("root must survive")
	}
	if len(w.ChildIDs(root.ID)) != 0 {
		t.Fatalf("root still lists removed child")
	}
	if len(w.GetEntitiesWithTag("enemy")) != 0 {
		t.Fatalf("tag index still references removed entity")
	}
}

func TestRemoveChildrenKeepsParent(t *testing.T) {
	w := NewWorld()
	root := w.CreateEntity()
	for i := 0; i < 3; i++ {
		e := w.CreateEntity()
		w.SetParent(e.ID, root.ID)
	}

	if got := len(w.ChildIDs(root.ID)); got != 3 {
		t.Fatalf("expected 3 children, got %d", got)
	}

	w.RemoveChildren(root.ID)

	if w.Count() != 1 {
		t.Fatalf("expected only the root to remain, got %d entities", w.Count())
	}
}

func TestSetParentMovesChild(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()

	w.SetParent(c.ID, a.ID)
	w.SetParent(c.ID, b.ID)

	if w.Parent(c.ID) != b.ID {
		t.Fatalf("expected parent %d, got %d", b.ID, w.Parent(c.ID))
	}
	if len(w.ChildIDs(a.ID)) != 0 {
		t.Fatalf("old parent still lists child")
	}

	w.SetParent(c.ID, NoEntity)
	if w.Parent(c.ID) != NoEntity {
		t.Fatalf("expected child to be detached")
	}
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	w.AddComponent(a.ID, 1, "first")
	w.AddComponent(b.ID, 1, "second")
	w.AddComponent(b.ID, 2, 42)

	with := w.GetEntitiesWithComponent(1)
	if len(with) != 2 || with[0].ID != a.ID || with[1].ID != b.ID {
		t.Fatalf("unexpected component query result: %+v", with)
	}

	w.RemoveComponent(b.ID, 2)
	if w.HasComponent(b.ID, 2) {
		t.Fatalf("component 2 should be removed")
	}

	// Unknown entities are ignored.
	w.AddComponent(999, 1, "ghost")
	if w.HasComponent(999, 1) {
		t.Fatalf("component attached to unknown entity")
	}
}

func TestEventManagerUnsubscribe(t *testing.T) {
	em := NewEventManager()
	var got []int

	first := em.Subscribe("test", func(e Event) { got = append(got, e.(testEvent).payload) })
	em.Subscribe("test", func(e Event) { got = append(got, -e.(testEvent).payload) })

	em.Emit(testEvent{payload: 1})
	em.Unsubscribe("test", first)
	em.Emit(testEvent{payload: 2})

	want := []int{1, -1, -2}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
