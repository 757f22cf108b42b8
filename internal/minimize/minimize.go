// Package minimize reduces decoded sum-of-products equations with
// Quine-McCluskey. A programmed device rarely holds the minimal form of
// the logic it implements; the reduced form is easier to audit.
package minimize

import (
	"errors"
	"sort"

	"github.com/pborges/galdis/internal/gal"
)

// MaxVariables bounds the number of distinct pins an equation may use
// before minimization is refused.
const MaxVariables = 16

var ErrTooManyVariables = errors.New("too many variables to minimize")

// Terms returns an equivalent, usually shorter, list of product terms.
// Terms holding a pin and its complement are dropped first. When the
// equation uses more than MaxVariables pins the remaining terms are
// returned unreduced together with ErrTooManyVariables.
func Terms(terms []gal.Term) ([]gal.Term, error) {
	live := make([]gal.Term, 0, len(terms))
	for _, t := range terms {
		if !t.Contradicts() {
			live = append(live, t)
		}
	}
	if len(live) <= 1 {
		return live, nil
	}

	vars, varIndex := collectVars(live)
	if len(vars) > MaxVariables {
		return live, ErrTooManyVariables
	}
	numVars := len(vars)

	inputImps := make([]implicant, len(live))
	for i, t := range live {
		inputImps[i] = termToImplicant(t, varIndex)
	}

	mintermSet := make(map[uint64]bool)
	for _, imp := range inputImps {
		expandMinterms(imp, numVars, mintermSet)
	}
	minterms := make([]uint64, 0, len(mintermSet))
	for m := range mintermSet {
		minterms = append(minterms, m)
	}
	sort.Slice(minterms, func(i, j int) bool { return minterms[i] < minterms[j] })

	primes := findPrimeImplicants(minterms, numVars)
	selected := minimumCover(primes, minterms, numVars)

	if len(selected) >= len(live) {
		// No reduction: keep the decoded row order.
		return live, nil
	}
	sort.Slice(selected, func(i, j int) bool {
		if selected[i].mask != selected[j].mask {
			return selected[i].mask < selected[j].mask
		}
		return selected[i].value > selected[j].value
	})
	return implicantsToTerms(selected, vars), nil
}

// implicant represents a product term using bitmasks.
// value holds the bit values for care positions; mask has 1=care, 0=don't-care.
type implicant struct {
	value uint64
	mask  uint64
}

func termToImplicant(t gal.Term, varIndex map[int]int) implicant {
	var value, mask uint64
	for _, p := range t {
		bit := uint64(1) << varIndex[p.Pin]
		mask |= bit
		if !p.Neg {
			value |= bit
		}
	}
	return implicant{value: value, mask: mask}
}

// expandMinterms adds every minterm covered by imp to out.
func expandMinterms(imp implicant, numVars int, out map[uint64]bool) {
	var dcBits []int
	for b := 0; b < numVars; b++ {
		if imp.mask&(uint64(1)<<b) == 0 {
			dcBits = append(dcBits, b)
		}
	}
	base := imp.value & imp.mask
	n := 1 << len(dcBits)
	for i := 0; i < n; i++ {
		m := base
		for j, bit := range dcBits {
			if i&(1<<j) != 0 {
				m |= uint64(1) << bit
			}
		}
		out[m] = true
	}
}

// findPrimeImplicants merges implicants differing in one variable until
// nothing merges; whatever never merged is prime.
func findPrimeImplicants(minterms []uint64, numVars int) []implicant {
	fullMask := uint64((1 << numVars) - 1)

	current := make(map[implicant]bool)
	for _, m := range minterms {
		current[implicant{value: m & fullMask, mask: fullMask}] = true
	}
	primeSet := make(map[implicant]bool)

	for len(current) > 0 {
		merged := make(map[implicant]bool)
		used := make(map[implicant]bool)

		impList := make([]implicant, 0, len(current))
		for imp := range current {
			impList = append(impList, imp)
		}
		for i := 0; i < len(impList); i++ {
			for j := i + 1; j < len(impList); j++ {
				if m, ok := tryMerge(impList[i], impList[j]); ok {
					merged[m] = true
					used[impList[i]] = true
					used[impList[j]] = true
				}
			}
		}
		for _, imp := range impList {
			if !used[imp] {
				primeSet[imp] = true
			}
		}
		current = merged
	}

	primes := make([]implicant, 0, len(primeSet))
	for p := range primeSet {
		primes = append(primes, p)
	}
	sort.Slice(primes, func(i, j int) bool {
		if primes[i].mask != primes[j].mask {
			return primes[i].mask > primes[j].mask
		}
		return primes[i].value > primes[j].value
	})
	return primes
}

func tryMerge(a, b implicant) (implicant, bool) {
	if a.mask != b.mask {
		return implicant{}, false
	}
	diff := (a.value ^ b.value) & a.mask
	if diff == 0 || (diff&(diff-1)) != 0 {
		return implicant{}, false
	}
	return implicant{value: a.value &^ diff, mask: a.mask &^ diff}, true
}

// minimumCover picks essential prime implicants first, then greedily
// covers what is left.
func minimumCover(primes []implicant, minterms []uint64, numVars int) []implicant {
	if len(primes) == 0 {
		return nil
	}
	mintermIdx := make(map[uint64]int, len(minterms))
	for i, m := range minterms {
		mintermIdx[m] = i
	}

	covers := make([]map[int]bool, len(primes))
	for i, p := range primes {
		covers[i] = make(map[int]bool)
		expanded := make(map[uint64]bool)
		expandMinterms(p, numVars, expanded)
		for m := range expanded {
			if idx, ok := mintermIdx[m]; ok {
				covers[i][idx] = true
			}
		}
	}

	uncovered := make([]bool, len(minterms))
	for i := range uncovered {
		uncovered[i] = true
	}
	remaining := len(minterms)
	var selected []implicant

	take := func(pi int) {
		selected = append(selected, primes[pi])
		for mi := range covers[pi] {
			if uncovered[mi] {
				uncovered[mi] = false
				remaining--
			}
		}
		covers[pi] = nil
	}

	for changed := true; changed; {
		changed = false
		for mi := 0; mi < len(minterms); mi++ {
			if !uncovered[mi] {
				continue
			}
			sole := -1
			for pi, c := range covers {
				if c == nil || !c[mi] {
					continue
				}
				if sole >= 0 {
					sole = -1
					break
				}
				sole = pi
			}
			if sole >= 0 {
				take(sole)
				changed = true
			}
		}
	}

	for remaining > 0 {
		best, bestCount := -1, 0
		for pi, c := range covers {
			if c == nil {
				continue
			}
			count := 0
			for mi := range c {
				if uncovered[mi] {
					count++
				}
			}
			if count > bestCount {
				best, bestCount = pi, count
			}
		}
		if best < 0 {
			break
		}
		take(best)
	}
	return selected
}

// collectVars gathers the pins used by terms in ascending order.
func collectVars(terms []gal.Term) ([]int, map[int]int) {
	seen := make(map[int]bool)
	for _, t := range terms {
		for _, p := range t {
			seen[p.Pin] = true
		}
	}
	vars := make([]int, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	idx := make(map[int]int, len(vars))
	for i, v := range vars {
		idx[v] = i
	}
	return vars, idx
}

func implicantsToTerms(imps []implicant, vars []int) []gal.Term {
	terms := make([]gal.Term, 0, len(imps))
	for _, imp := range imps {
		var t gal.Term
		for i, v := range vars {
			bit := uint64(1) << i
			if imp.mask&bit == 0 {
				continue
			}
			t = append(t, gal.Pin{Pin: v, Neg: imp.value&bit == 0})
		}
		terms = append(terms, t)
	}
	return terms
}
