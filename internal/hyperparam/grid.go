package hyperparam

import (
	"math/rand"
	"sort"
)

// Combination is one fully-resolved assignment of parameter name to value.
type Combination map[string]int

// Grid is a named set of candidate values per hyperparameter, e.g.
// {"m": [500, 1000], "k": [50, 100, 500]}.
type Grid struct {
	ParamGrid map[string][]int
}

// GetQtyCombinations returns the size of the full Cartesian product
// without materializing it.
func (g *Grid) GetQtyCombinations() int {
	if len(g.ParamGrid) == 0 {
		return 0
	}
	total := 1
	for _, values := range g.ParamGrid {
		total *= len(values)
	}
	return total
}

// GetAllCombinations returns every Combination in the Cartesian product of
// the grid's parameter values. Parameter iteration order follows the
// sorted key order for reproducibility across runs.
func (g *Grid) GetAllCombinations() []Combination {
	keys := make([]string, 0, len(g.ParamGrid))
	for k := range g.ParamGrid {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([][]int, len(keys))
	for i, k := range keys {
		values[i] = g.ParamGrid[k]
	}

	var out []Combination
	for _, tuple := range cartesianProduct(values) {
		combo := make(Combination, len(keys))
		for i, k := range keys {
			combo[k] = tuple[i]
		}
		out = append(out, combo)
	}
	return out
}

func cartesianProduct(lists [][]int) [][]int {
	if len(lists) == 0 {
		return nil
	}

	res := make([][]int, 0, len(lists[0]))
	for _, v := range lists[0] {
		res = append(res, []int{v})
	}

	for _, list := range lists[1:] {
		var next [][]int
		for _, prefix := range res {
			for _, v := range list {
				tuple := make([]int, len(prefix)+1)
				copy(tuple, prefix)
				tuple[len(prefix)] = v
				next = append(next, tuple)
			}
		}
		res = next
	}
	return res
}

// GetNRandomCombinations returns up to n combinations chosen uniformly at
// random without replacement from the full Cartesian product, using rng
// for the shuffle. If n exceeds the number of combinations, every
// combination is returned.
func (g *Grid) GetNRandomCombinations(n int, rng *rand.Rand) []Combination {
	all := g.GetAllCombinations()
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}
