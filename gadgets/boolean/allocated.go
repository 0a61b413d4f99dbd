// Package boolean implements a single-bit gadget over a Rank-1
// Constraint System.
//
// An AllocatedBool is a wire constrained to {0,1}; the logic operators
// compose such wires while adding at most one multiplicative constraint
// each. In general, prefer Boolean over AllocatedBool: it also
// represents compile-time constants and folds operations on them away.
package boolean

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkgadgets/boolcs/constraint"
)

// AllocationMode selects how a boolean value enters the circuit.
type AllocationMode uint8

const (
	// Constant bakes the value into the circuit description; no variable
	// is allocated and no constraint is added.
	Constant AllocationMode = iota
	// PublicInput allocates a public input variable.
	PublicInput
	// PrivateWitness allocates a private witness variable.
	PrivateWitness
)

// coefficient values shared by every gadget
var (
	coeffOne      = fr.One()
	coeffTwo      = fr.NewElement(2)
	coeffMinusOne fr.Element
)

func init() {
	coeffMinusOne.Neg(&coeffOne)
}

// AllocatedBool represents a variable in the constraint system which is
// guaranteed to be 0 or 1 whenever the system is satisfied.
//
// It is immutable: operators consume operands and return fresh results.
type AllocatedBool struct {
	variable constraint.Variable
	cs       *constraint.ConstraintSystem
	// snapshot of cs.ShouldConstructMatrices at construction time
	constructLC bool
	value       bool
	hasValue    bool
}

// Alloc allocates a boolean from the deferred value provider f. The
// provider is invoked at most once.
//
// In Constant mode the value must be known: a provider failure is fatal.
// Otherwise a provider failure is tolerated; the variable is still
// allocated (so the circuit shape can be described without witness
// data) and only later Value calls fail with ErrAssignmentMissing.
// Non-constant allocations carry the booleanity constraint (1-a)*a = 0.
func Alloc(cs *constraint.ConstraintSystem, f func() (bool, error), mode AllocationMode) (*AllocatedBool, error) {
	if mode == Constant {
		v, err := f()
		if err != nil {
			return nil, fmt.Errorf("constant allocation: %w", err)
		}
		variable := constraint.Zero
		if v {
			variable = constraint.One
		}
		return &AllocatedBool{
			variable:    variable,
			cs:          cs,
			constructLC: cs.ShouldConstructMatrices(),
			value:       v,
			hasValue:    true,
		}, nil
	}

	v, errValue := f()
	provider := func() (fr.Element, error) {
		if errValue != nil {
			return fr.Element{}, errValue
		}
		return b2f(v), nil
	}

	var variable constraint.Variable
	var err error
	if mode == PublicInput {
		variable, err = cs.NewInputVariable(provider)
	} else {
		variable, err = cs.NewWitnessVariable(provider)
	}
	if err != nil {
		return nil, err
	}

	// (1 - a) * a = 0 constrains a to be 0 or 1
	if cs.ShouldConstructMatrices() {
		if err := cs.EnforceConstraint(
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: constraint.One},
				{Coeff: coeffMinusOne, Variable: variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: variable},
			},
			nil,
		); err != nil {
			return nil, err
		}
	} else {
		cs.IncrementConstraintCount()
	}
	cs.MarkBoolean(variable)

	return &AllocatedBool{
		variable:    variable,
		cs:          cs,
		constructLC: cs.ShouldConstructMatrices(),
		value:       v && errValue == nil,
		hasValue:    errValue == nil,
	}, nil
}

// NewWitness allocates a private witness boolean.
func NewWitness(cs *constraint.ConstraintSystem, f func() (bool, error)) (*AllocatedBool, error) {
	return Alloc(cs, f, PrivateWitness)
}

// NewInput allocates a public input boolean.
func NewInput(cs *constraint.ConstraintSystem, f func() (bool, error)) (*AllocatedBool, error) {
	return Alloc(cs, f, PublicInput)
}

// NewConstant binds v to the reserved constant handle; no constraint is
// added.
func NewConstant(cs *constraint.ConstraintSystem, v bool) *AllocatedBool {
	b, _ := Alloc(cs, func() (bool, error) { return v, nil }, Constant)
	return b
}

// Value returns the assigned value, or ErrAssignmentMissing if none was
// ever supplied.
func (b *AllocatedBool) Value() (bool, error) {
	if !b.hasValue {
		return false, constraint.ErrAssignmentMissing
	}
	return b.value, nil
}

// Variable returns the underlying wire handle.
func (b *AllocatedBool) Variable() constraint.Variable {
	return b.variable
}

// newWitnessNoBooleanityCheck allocates an operator result. Its
// booleanity is implied by the operator's own constraint, so the
// explicit check is skipped; re-checking would double the cost.
func newWitnessNoBooleanityCheck(cs *constraint.ConstraintSystem, f func() (bool, error)) (*AllocatedBool, error) {
	v, errValue := f()
	variable, err := cs.NewWitnessVariable(func() (fr.Element, error) {
		if errValue != nil {
			return fr.Element{}, errValue
		}
		return b2f(v), nil
	})
	if err != nil {
		return nil, err
	}
	cs.MarkBoolean(variable)
	return &AllocatedBool{
		variable:    variable,
		cs:          cs,
		constructLC: cs.ShouldConstructMatrices(),
		value:       v && errValue == nil,
		hasValue:    errValue == nil,
	}, nil
}

// Not returns ¬a as the affine combination 1 - a. No multiplicative
// constraint and no witness allocation is needed, negation is affine.
func (a *AllocatedBool) Not() (*AllocatedBool, error) {
	var lc constraint.LinearCombination
	if a.constructLC {
		lc = constraint.LinearCombination{
			{Coeff: coeffOne, Variable: constraint.One},
			{Coeff: coeffMinusOne, Variable: a.variable},
		}
	}
	variable, err := a.cs.NewLcVariable(lc)
	if err != nil {
		return nil, err
	}
	a.cs.MarkBoolean(variable)
	return &AllocatedBool{
		variable:    variable,
		cs:          a.cs,
		constructLC: a.cs.ShouldConstructMatrices(),
		value:       a.hasValue && !a.value,
		hasValue:    a.hasValue,
	}, nil
}

// Xor returns a ⊕ b.
//
// Operands must have been produced by Alloc or by another operator:
// booleanity of the result is implied algebraically and is only sound
// if both operands are already constrained to {0,1}.
func (a *AllocatedBool) Xor(b *AllocatedBool) (*AllocatedBool, error) {
	result, err := newWitnessNoBooleanityCheck(a.cs, func() (bool, error) {
		av, err := a.Value()
		if err != nil {
			return false, err
		}
		bv, err := b.Value()
		if err != nil {
			return false, err
		}
		return av != bv, nil
	})
	if err != nil {
		return nil, err
	}

	// Constrain (2a) * b = a + b - c, using a + b - 2ab = a ⊕ b.
	// If a == b the only solution for c is 0, otherwise it is 1.
	if a.constructLC {
		if err := a.cs.EnforceConstraint(
			constraint.LinearCombination{
				{Coeff: coeffTwo, Variable: a.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: b.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: a.variable},
				{Coeff: coeffOne, Variable: b.variable},
				{Coeff: coeffMinusOne, Variable: result.variable},
			},
		); err != nil {
			return nil, err
		}
	} else {
		a.cs.IncrementConstraintCount()
	}

	return result, nil
}

// And returns a ∧ b. See Xor for the operand precondition.
func (a *AllocatedBool) And(b *AllocatedBool) (*AllocatedBool, error) {
	result, err := newWitnessNoBooleanityCheck(a.cs, func() (bool, error) {
		av, err := a.Value()
		if err != nil {
			return false, err
		}
		bv, err := b.Value()
		if err != nil {
			return false, err
		}
		return av && bv, nil
	})
	if err != nil {
		return nil, err
	}

	// Constrain a * b = c, ensuring c is 1 iff a and b are both 1.
	if a.constructLC {
		if err := a.cs.EnforceConstraint(
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: a.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: b.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: result.variable},
			},
		); err != nil {
			return nil, err
		}
	} else {
		a.cs.IncrementConstraintCount()
	}

	return result, nil
}

// Or returns a ∨ b. See Xor for the operand precondition.
func (a *AllocatedBool) Or(b *AllocatedBool) (*AllocatedBool, error) {
	result, err := newWitnessNoBooleanityCheck(a.cs, func() (bool, error) {
		av, err := a.Value()
		if err != nil {
			return false, err
		}
		bv, err := b.Value()
		if err != nil {
			return false, err
		}
		return av || bv, nil
	})
	if err != nil {
		return nil, err
	}

	// Constrain (1 - a) * (1 - b) = 1 - c, ensuring c is 0 iff a and b
	// are both 0.
	if a.constructLC {
		if err := a.cs.EnforceConstraint(
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: constraint.One},
				{Coeff: coeffMinusOne, Variable: a.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: constraint.One},
				{Coeff: coeffMinusOne, Variable: b.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: constraint.One},
				{Coeff: coeffMinusOne, Variable: result.variable},
			},
		); err != nil {
			return nil, err
		}
	} else {
		a.cs.IncrementConstraintCount()
	}

	return result, nil
}

// AndNot returns a ∧ ¬b. See Xor for the operand precondition.
func (a *AllocatedBool) AndNot(b *AllocatedBool) (*AllocatedBool, error) {
	result, err := newWitnessNoBooleanityCheck(a.cs, func() (bool, error) {
		av, err := a.Value()
		if err != nil {
			return false, err
		}
		bv, err := b.Value()
		if err != nil {
			return false, err
		}
		return av && !bv, nil
	})
	if err != nil {
		return nil, err
	}

	// Constrain a * (1 - b) = c, ensuring c is 1 iff a is 1 and b is 0.
	if a.constructLC {
		if err := a.cs.EnforceConstraint(
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: a.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: constraint.One},
				{Coeff: coeffMinusOne, Variable: b.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: result.variable},
			},
		); err != nil {
			return nil, err
		}
	} else {
		a.cs.IncrementConstraintCount()
	}

	return result, nil
}

// Nor returns ¬a ∧ ¬b. See Xor for the operand precondition.
func (a *AllocatedBool) Nor(b *AllocatedBool) (*AllocatedBool, error) {
	result, err := newWitnessNoBooleanityCheck(a.cs, func() (bool, error) {
		av, err := a.Value()
		if err != nil {
			return false, err
		}
		bv, err := b.Value()
		if err != nil {
			return false, err
		}
		return !av && !bv, nil
	})
	if err != nil {
		return nil, err
	}

	// Constrain (1 - a) * (1 - b) = c, ensuring c is 1 iff a and b are
	// both 0.
	if a.constructLC {
		if err := a.cs.EnforceConstraint(
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: constraint.One},
				{Coeff: coeffMinusOne, Variable: a.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: constraint.One},
				{Coeff: coeffMinusOne, Variable: b.variable},
			},
			constraint.LinearCombination{
				{Coeff: coeffOne, Variable: result.variable},
			},
		); err != nil {
			return nil, err
		}
	} else {
		a.cs.IncrementConstraintCount()
	}

	return result, nil
}

// Select returns ifTrue when cond holds and ifFalse otherwise. It
// delegates to Boolean's selection; since both operands are allocated
// (never compile-time constants) the result must come back as a
// variable, anything else is a bug in Boolean.Select.
func Select(cond Boolean, ifTrue, ifFalse *AllocatedBool) (*AllocatedBool, error) {
	res, err := cond.Select(Var(ifTrue), Var(ifFalse))
	if err != nil {
		return nil, err
	}
	a, ok := res.Allocated()
	if !ok {
		panic("selection between two allocated booleans returned a constant")
	}
	return a, nil
}

func b2f(v bool) fr.Element {
	if v {
		return fr.One()
	}
	return fr.Element{}
}
