package hyperparam

import (
	"math/rand"
	"strconv"
	"testing"
)

func TestGetAllCombinationsSingleValuePerParam(t *testing.T) {
	grid := &Grid{ParamGrid: map[string][]int{
		"sample_size":          {1000},
		"k":                    {500},
		"last_items_in_session": {10},
	}}

	combos := grid.GetAllCombinations()
	if len(combos) != 1 {
		t.Fatalf("expected 1 combination, got %d", len(combos))
	}
	c := combos[0]
	if c["sample_size"] != 1000 || c["k"] != 500 || c["last_items_in_session"] != 10 {
		t.Errorf("unexpected combination: %+v", c)
	}
}

func threeParamGrid() *Grid {
	return &Grid{ParamGrid: map[string][]int{
		"sample_size":          {500, 750, 1000, 2500, 5000},
		"k":                    {50, 100, 500, 1000, 1500},
		"last_items_in_session": {1, 2, 3, 5, 10},
	}}
}

func TestGetQtyCombinations(t *testing.T) {
	grid := threeParamGrid()
	if got := grid.GetQtyCombinations(); got != 5*5*5 {
		t.Errorf("expected %d, got %d", 5*5*5, got)
	}
}

func TestGetAllCombinations(t *testing.T) {
	grid := threeParamGrid()
	combos := grid.GetAllCombinations()
	if len(combos) != 5*5*5 {
		t.Fatalf("expected %d combinations, got %d", 5*5*5, len(combos))
	}
	if len(combos[0]) != 3 {
		t.Errorf("expected 3 params per combination, got %d", len(combos[0]))
	}
}

func TestGetNRandomCombinationsCapsAtGridSize(t *testing.T) {
	grid := threeParamGrid()
	rng := rand.New(rand.NewSource(1))

	all := grid.GetNRandomCombinations(100000000, rng)
	if len(all) != 5*5*5 {
		t.Errorf("expected capped at %d, got %d", 5*5*5, len(all))
	}

	ten := grid.GetNRandomCombinations(10, rng)
	if len(ten) != 10 {
		t.Errorf("expected 10, got %d", len(ten))
	}
}

func TestGetNRandomCombinationsAreDistinct(t *testing.T) {
	grid := threeParamGrid()
	rng := rand.New(rand.NewSource(42))

	combos := grid.GetNRandomCombinations(20, rng)
	seen := make(map[string]struct{}, len(combos))
	for _, c := range combos {
		key := ""
		for _, k := range []string{"sample_size", "k", "last_items_in_session"} {
			key += k + "=" + strconv.Itoa(c[k]) + ";"
		}
		if _, dup := seen[key]; dup {
			t.Errorf("expected distinct combinations, found duplicate %s", key)
		}
		seen[key] = struct{}{}
	}
}
