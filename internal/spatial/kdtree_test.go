package spatial

import "testing"

func TestBuildKDTreePreservesAllPoints(t *testing.T) {
	points := []KDPoint{
		{Index: 0, Lon: 1, Lat: 1},
		{Index: 1, Lon: 2, Lat: 5},
		{Index: 2, Lon: 3, Lat: 2},
		{Index: 3, Lon: -1, Lat: 9},
		{Index: 4, Lon: 0, Lat: 0},
	}
	out := BuildKDTree(points)
	if len(out) != len(points) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(points))
	}
	seen := make(map[int]bool)
	for _, p := range out {
		seen[p.Index] = true
	}
	for _, p := range points {
		if !seen[p.Index] {
			t.Errorf("point index %d missing from tree output", p.Index)
		}
	}
}

func TestBuildKDTreeEmpty(t *testing.T) {
	if out := BuildKDTree(nil); len(out) != 0 {
		t.Errorf("BuildKDTree(nil) = %v, want empty", out)
	}
}

func TestBuildKDTreeSinglePoint(t *testing.T) {
	out := BuildKDTree([]KDPoint{{Index: 0, Lon: 1, Lat: 2}})
	if len(out) != 1 || out[0].Index != 0 {
		t.Errorf("BuildKDTree single point = %v", out)
	}
}

func TestBuildKDTreeDoesNotMutateInput(t *testing.T) {
	points := []KDPoint{{Index: 0, Lon: 5, Lat: 5}, {Index: 1, Lon: 1, Lat: 1}}
	orig := append([]KDPoint{}, points...)
	BuildKDTree(points)
	for i := range points {
		if points[i] != orig[i] {
			t.Errorf("input slice mutated at index %d: got %+v, want %+v", i, points[i], orig[i])
		}
	}
}
