package constraint

import (
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Term is a coefficient-variable product inside a LinearCombination.
type Term struct {
	Coeff    fr.Element
	Variable Variable
}

// LinearCombination is a weighted sum of variables. A nil combination
// evaluates to zero.
type LinearCombination []Term

// NewTerm returns coeff * v.
func NewTerm(v Variable, coeff fr.Element) Term {
	return Term{Coeff: coeff, Variable: v}
}

// Clone returns an independent copy of lc.
func (lc LinearCombination) Clone() LinearCombination {
	if lc == nil {
		return nil
	}
	res := make(LinearCombination, len(lc))
	copy(res, lc)
	return res
}

func (lc LinearCombination) String() string {
	if len(lc) == 0 {
		return "0"
	}
	var sbb strings.Builder
	for i, t := range lc {
		if i > 0 {
			sbb.WriteString(" + ")
		}
		sbb.WriteString(t.Coeff.String())
		sbb.WriteString("*")
		sbb.WriteString(t.Variable.String())
	}
	return sbb.String()
}

// R1C is a rank-1 constraint L * R = O.
type R1C struct {
	L, R, O LinearCombination
}
