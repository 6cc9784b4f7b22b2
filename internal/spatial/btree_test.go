package spatial

import "testing"

func TestBTreeInsertAndTraverseInOrder(t *testing.T) {
	bt := NewBTree()
	ids := []uint32{50, 10, 30, 90, 20, 70, 40, 60, 80, 5}
	for _, id := range ids {
		bt.Insert(id, uint64(id)*10)
	}

	pairs := bt.Pairs()
	if len(pairs) != len(ids) {
		t.Fatalf("len(pairs) = %d, want %d", len(pairs), len(ids))
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i-1].ID >= pairs[i].ID {
			t.Fatalf("pairs not strictly increasing at %d: %d >= %d", i, pairs[i-1].ID, pairs[i].ID)
		}
	}
	for _, p := range pairs {
		if p.Offset != uint64(p.ID)*10 {
			t.Errorf("offset for id %d = %d, want %d", p.ID, p.Offset, p.ID*10)
		}
	}
}

func TestBTreeInsertOverwritesExistingKey(t *testing.T) {
	bt := NewBTree()
	bt.Insert(1, 100)
	bt.Insert(1, 200)
	pairs := bt.Pairs()
	if len(pairs) != 1 || pairs[0].Offset != 200 {
		t.Errorf("pairs = %v, want single entry with offset 200", pairs)
	}
}

func TestBTreeSplitsAcrossManyEntries(t *testing.T) {
	bt := NewBTree()
	const n = 5000
	for i := uint32(0); i < n; i++ {
		bt.Insert(i, uint64(i))
	}
	pairs := bt.Pairs()
	if len(pairs) != n {
		t.Fatalf("len(pairs) = %d, want %d", len(pairs), n)
	}
	for i, p := range pairs {
		if p.ID != uint32(i) {
			t.Fatalf("pairs[%d].ID = %d, want %d", i, p.ID, i)
		}
	}
}

func TestBTreeEmpty(t *testing.T) {
	bt := NewBTree()
	if pairs := bt.Pairs(); len(pairs) != 0 {
		t.Errorf("Pairs() on empty tree = %v, want empty", pairs)
	}
}
