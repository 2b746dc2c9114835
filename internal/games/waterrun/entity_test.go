package waterrun

import "testing"

func TestRegistryAddAssignsIDs(t *testing.T) {
	r := NewRegistry()
	a := r.Add(Entity{Kind: KindTarget, X: 10, Width: 5})
	b := r.Add(Entity{Kind: KindObstacle, X: 20, Width: 5})

	if a.ID != 1 || b.ID != 2 {
		t.Errorf("ids = %d, %d, expected 1, 2", a.ID, b.ID)
	}
	if r.Get(2) != b || r.Get(3) != nil {
		t.Error("Get returned the wrong entity")
	}
	if len(r.Targets()) != 1 || len(r.Obstacles()) != 1 {
		t.Errorf("Targets/Obstacles = %d/%d, expected 1/1", len(r.Targets()), len(r.Obstacles()))
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len after Reset = %d, expected 0", r.Len())
	}
	if c := r.Add(Entity{}); c.ID != 1 {
		t.Errorf("id after Reset = %d, expected 1", c.ID)
	}
}

func TestRegistryRetireKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Add(Entity{X: -200, Width: 50}) // gone
	r.Add(Entity{X: 0, Width: 50})
	r.Add(Entity{X: -171, Width: 50}) // right edge -121, gone
	r.Add(Entity{X: -170, Width: 50}) // right edge -120, stays
	r.Add(Entity{X: 300, Width: 50})

	retired := r.Retire(-120)
	if len(retired) != 2 || retired[0] != 1 || retired[1] != 3 {
		t.Errorf("retired = %v, expected [1 3]", retired)
	}

	var ids []EntityID
	for _, e := range r.All() {
		ids = append(ids, e.ID)
	}
	if len(ids) != 3 || ids[0] != 2 || ids[1] != 4 || ids[2] != 5 {
		t.Errorf("remaining ids = %v, expected [2 4 5]", ids)
	}
}

func TestRegistryAdvance(t *testing.T) {
	r := NewRegistry()
	e := r.Add(Entity{X: 100})
	r.Advance(5.5)
	r.Advance(4.5)
	if e.X != 90 {
		t.Errorf("X = %v, expected 90", e.X)
	}
}
