package crt

import (
	"math/big"
	"testing"

	"github.com/ecpoint/go-sea/pkg/util/assert"
)

func TestSolve(t *testing.T) {
	var (
		moduli   = []*big.Int{big.NewInt(5), big.NewInt(7), big.NewInt(8), big.NewInt(9)}
		x        = big.NewInt(1234)
		residues = make([]*big.Int, len(moduli))
	)

	for i, m := range moduli {
		residues[i] = new(big.Int).Mod(x, m)
	}

	assert.BigEqual(t, x, Solve(residues, moduli))
}

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator()

	assert.BigEqualInt64(t, 1, acc.Product())
	assert.BigEqualInt64(t, 0, acc.Solve())

	// t = 1234 against pairwise coprime moduli
	for _, l := range []int64{5, 7, 8, 9, 11} {
		acc.Add(l, 1234%l)
	}

	assert.Equal(t, 5, acc.Len())
	assert.BigEqualInt64(t, 5*7*8*9*11, acc.Product())
	assert.BigEqualInt64(t, 1234, acc.Solve())
}
