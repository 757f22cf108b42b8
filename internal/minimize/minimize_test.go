package minimize

import (
	"reflect"
	"sort"
	"testing"

	"github.com/pborges/galdis/internal/gal"
	"github.com/pborges/galdis/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortTerms(terms []gal.Term) {
	for i := range terms {
		sort.Slice(terms[i], func(a, b int) bool {
			return terms[i][a].Pin < terms[i][b].Pin
		})
	}
	sort.Slice(terms, func(i, j int) bool {
		a, b := terms[i], terms[j]
		minLen := len(a)
		if len(b) < minLen {
			minLen = len(b)
		}
		for k := 0; k < minLen; k++ {
			if a[k].Pin != b[k].Pin {
				return a[k].Pin < b[k].Pin
			}
			if a[k].Neg != b[k].Neg {
				return !a[k].Neg
			}
		}
		return len(a) < len(b)
	})
}

func mustTerms(t *testing.T, terms []gal.Term) []gal.Term {
	t.Helper()
	result, err := Terms(terms)
	require.NoError(t, err)
	return result
}

func TestTerms_ABnB_OR_AB(t *testing.T) {
	// A*/B + A*B → A
	result := mustTerms(t, testutil.Terms("1 /2", "1 2"))
	expected := testutil.Terms("1")
	sortTerms(result)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestTerms_AllCombinations(t *testing.T) {
	// A with every combination of B and C → A
	result := mustTerms(t, testutil.Terms("1 /2 /3", "1 2 /3", "1 /2 3", "1 2 3"))
	expected := testutil.Terms("1")
	sortTerms(result)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestTerms_SingleTerm(t *testing.T) {
	terms := testutil.Terms("1 2")
	result := mustTerms(t, terms)
	if !reflect.DeepEqual(result, terms) {
		t.Errorf("got %v, want %v", result, terms)
	}
}

func TestTerms_Empty(t *testing.T) {
	result := mustTerms(t, nil)
	if len(result) != 0 {
		t.Errorf("got %v, want empty", result)
	}
}

func TestTerms_Subsumption(t *testing.T) {
	// A + A*B → A
	result := mustTerms(t, testutil.Terms("1", "1 2"))
	expected := testutil.Terms("1")
	sortTerms(result)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestTerms_Consensus(t *testing.T) {
	// A*B + /A*C + B*C → A*B + /A*C
	result := mustTerms(t, testutil.Terms("1 2", "/1 3", "2 3"))
	require.Len(t, result, 2)
	assert.Equal(t, "A * B", result[0].String())
	assert.Equal(t, "/A * C", result[1].String())
}

func TestTerms_Tautology(t *testing.T) {
	result := mustTerms(t, testutil.Terms("4", "/4"))
	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].String())
}

func TestTerms_DropsContradictions(t *testing.T) {
	result := mustTerms(t, testutil.Terms("1 /1", "2", "3 2 /3"))
	assert.Equal(t, testutil.Terms("2"), result)

	result = mustTerms(t, testutil.Terms("1 /1"))
	assert.Empty(t, result)
}

func TestTerms_NoReductionKeepsOrder(t *testing.T) {
	terms := testutil.Terms("/1 2", "1")
	result := mustTerms(t, terms)
	assert.Equal(t, terms, result)
}

func TestTerms_TooManyVariables(t *testing.T) {
	var big gal.Term
	for pin := 1; pin <= MaxVariables+1; pin++ {
		big = append(big, gal.Pin{Pin: pin})
	}
	terms := []gal.Term{big, testutil.Terms("1")[0]}
	result, err := Terms(terms)
	assert.ErrorIs(t, err, ErrTooManyVariables)
	assert.Equal(t, terms, result)
}
