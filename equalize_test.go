package dotswarm

import (
	"errors"
	"reflect"
	"testing"
)

func pointRange(n, offset int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: i + offset, Y: i}
	}
	return pts
}

func TestEqualizeSizes(t *testing.T) {
	sets := [][]Point{pointRange(50, 0), pointRange(30, 1000), pointRange(70, 2000)}
	got, err := Equalize(NewRand(7), sets)
	if err != nil {
		t.Fatalf("Equalize: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, s := range got {
		if len(s) != 30 {
			t.Errorf("set %d len = %d, want 30", i, len(s))
		}
	}
}

func TestEqualizeSubsetNoDuplicates(t *testing.T) {
	sets := [][]Point{pointRange(50, 0), pointRange(30, 1000), pointRange(70, 2000)}
	got, _ := Equalize(NewRand(7), sets)
	for i, s := range got {
		raw := make(map[Point]bool, len(sets[i]))
		for _, p := range sets[i] {
			raw[p] = true
		}
		seen := make(map[Point]bool, len(s))
		for _, p := range s {
			if !raw[p] {
				t.Errorf("set %d: %v not in raw set", i, p)
			}
			if seen[p] {
				t.Errorf("set %d: duplicate %v", i, p)
			}
			seen[p] = true
		}
	}
}

func TestEqualizeDoesNotModifyInput(t *testing.T) {
	a := pointRange(10, 0)
	b := pointRange(4, 100)
	wantA := append([]Point(nil), a...)
	wantB := append([]Point(nil), b...)
	if _, err := Equalize(NewRand(3), [][]Point{a, b}); err != nil {
		t.Fatalf("Equalize: %v", err)
	}
	if !reflect.DeepEqual(a, wantA) || !reflect.DeepEqual(b, wantB) {
		t.Error("Equalize modified its input")
	}
}

func TestEqualizeShuffles(t *testing.T) {
	// Truncating the larger set without a shuffle would always keep its
	// first 10 points.
	sets := [][]Point{pointRange(1000, 0), pointRange(10, 0)}
	got, _ := Equalize(NewRand(11), sets)
	if reflect.DeepEqual(got[0], sets[0][:10]) {
		t.Error("larger set was truncated in raster order")
	}
}

func TestEqualizeSeedReproducible(t *testing.T) {
	sets := [][]Point{pointRange(40, 0), pointRange(25, 0)}
	a, _ := Equalize(NewRand(99), sets)
	b, _ := Equalize(NewRand(99), sets)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different results")
	}
}

func TestEqualizeDegenerate(t *testing.T) {
	sets := [][]Point{pointRange(5, 0), nil, pointRange(8, 0), {}}
	got, err := Equalize(NewRand(1), sets)
	var de *DegenerateInputError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *DegenerateInputError", err)
	}
	if de.Formation != 1 {
		t.Errorf("Formation = %d, want 1", de.Formation)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for i, s := range got {
		if len(s) != 0 {
			t.Errorf("set %d len = %d, want 0", i, len(s))
		}
	}
}

func TestEqualizeNoFormations(t *testing.T) {
	if _, err := Equalize(NewRand(1), nil); !errors.Is(err, ErrNoFormations) {
		t.Errorf("err = %v, want ErrNoFormations", err)
	}
}
