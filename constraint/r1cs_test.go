package constraint

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func assigned(v uint64) func() (fr.Element, error) {
	return func() (fr.Element, error) {
		return fr.NewElement(v), nil
	}
}

func unassigned() (fr.Element, error) {
	return fr.Element{}, ErrAssignmentMissing
}

func TestVariableAllocation(t *testing.T) {
	assert := require.New(t)
	cs := NewConstraintSystem()

	x, err := cs.NewInputVariable(assigned(3))
	assert.NoError(err)
	assert.Equal(KindPublic, x.Kind())

	y, err := cs.NewWitnessVariable(assigned(5))
	assert.NoError(err)
	assert.Equal(KindWitness, y.Kind())

	assert.Equal(1, cs.NbPublic())
	assert.Equal(1, cs.NbWitness())

	v, err := cs.VariableValue(x)
	assert.NoError(err)
	three := fr.NewElement(3)
	assert.True(v.Equal(&three))

	v, err = cs.VariableValue(One)
	assert.NoError(err)
	one := fr.One()
	assert.True(v.Equal(&one))

	v, err = cs.VariableValue(Zero)
	assert.NoError(err)
	assert.True(v.IsZero())
}

func TestMissingAssignment(t *testing.T) {
	assert := require.New(t)
	cs := NewConstraintSystem()

	x, err := cs.NewWitnessVariable(unassigned)
	assert.NoError(err)

	_, err = cs.VariableValue(x)
	assert.ErrorIs(err, ErrAssignmentMissing)

	// the wire exists and can still appear in constraints
	one := fr.One()
	err = cs.EnforceConstraint(
		LinearCombination{NewTerm(x, one)},
		LinearCombination{NewTerm(One, one)},
		LinearCombination{NewTerm(x, one)},
	)
	assert.NoError(err)

	_, err = cs.IsSatisfied()
	assert.ErrorIs(err, ErrAssignmentMissing)
}

func TestSatisfiability(t *testing.T) {
	assert := require.New(t)
	cs := NewConstraintSystem()
	one := fr.One()

	a, err := cs.NewWitnessVariable(assigned(3))
	assert.NoError(err)
	b, err := cs.NewWitnessVariable(assigned(4))
	assert.NoError(err)
	c, err := cs.NewWitnessVariable(assigned(12))
	assert.NoError(err)

	// a * b = c
	err = cs.EnforceConstraint(
		LinearCombination{NewTerm(a, one)},
		LinearCombination{NewTerm(b, one)},
		LinearCombination{NewTerm(c, one)},
	)
	assert.NoError(err)

	ok, err := cs.IsSatisfied()
	assert.NoError(err)
	assert.True(ok)

	// (1 - a) * a = 0 does not hold for a = 3
	var minusOne fr.Element
	minusOne.Neg(&one)
	err = cs.EnforceConstraint(
		LinearCombination{NewTerm(One, one), NewTerm(a, minusOne)},
		LinearCombination{NewTerm(a, one)},
		nil,
	)
	assert.NoError(err)

	ok, err = cs.IsSatisfied()
	assert.NoError(err)
	assert.False(ok)
}

func TestSymbolicLcExpansion(t *testing.T) {
	assert := require.New(t)
	cs := NewConstraintSystem()
	one := fr.One()
	var minusOne fr.Element
	minusOne.Neg(&one)

	a, err := cs.NewWitnessVariable(assigned(1))
	assert.NoError(err)

	// n = 1 - a
	n, err := cs.NewLcVariable(LinearCombination{NewTerm(One, one), NewTerm(a, minusOne)})
	assert.NoError(err)
	assert.Equal(KindSymbolicLc, n.Kind())
	assert.Equal(1, cs.NbSymbolicLcs())

	v, err := cs.VariableValue(n)
	assert.NoError(err)
	assert.True(v.IsZero())
}

func TestCountingMode(t *testing.T) {
	assert := require.New(t)
	cs := NewConstraintSystem(WithoutMatrices())
	one := fr.One()

	assert.False(cs.ShouldConstructMatrices())

	a, err := cs.NewWitnessVariable(assigned(1))
	assert.NoError(err)

	err = cs.EnforceConstraint(
		LinearCombination{NewTerm(a, one)},
		LinearCombination{NewTerm(a, one)},
		LinearCombination{NewTerm(a, one)},
	)
	assert.ErrorIs(err, ErrMatricesNotConstructed)

	cs.IncrementConstraintCount()
	cs.IncrementConstraintCount()
	assert.Equal(2, cs.NbConstraints())

	// lc variables keep consistent identifiers but carry no data
	n, err := cs.NewLcVariable(nil)
	assert.NoError(err)
	_, err = cs.VariableValue(n)
	assert.ErrorIs(err, ErrMatricesNotConstructed)

	_, err = cs.IsSatisfied()
	assert.ErrorIs(err, ErrMatricesNotConstructed)

	_, err = cs.ToBytes()
	assert.ErrorIs(err, ErrMatricesNotConstructed)
}

func TestMarkBoolean(t *testing.T) {
	assert := require.New(t)
	cs := NewConstraintSystem()

	assert.True(cs.IsBoolean(One))
	assert.True(cs.IsBoolean(Zero))

	a, err := cs.NewWitnessVariable(assigned(1))
	assert.NoError(err)
	assert.False(cs.IsBoolean(a))
	cs.MarkBoolean(a)
	assert.True(cs.IsBoolean(a))

	b, err := cs.NewInputVariable(assigned(0))
	assert.NoError(err)
	assert.False(cs.IsBoolean(b))
	cs.MarkBoolean(b)
	assert.True(cs.IsBoolean(b))
}

func TestMarshalRoundTrip(t *testing.T) {
	assert := require.New(t)
	cs := NewConstraintSystem()
	one := fr.One()
	var minusOne fr.Element
	minusOne.Neg(&one)

	a, err := cs.NewWitnessVariable(assigned(1))
	assert.NoError(err)
	cs.MarkBoolean(a)
	b, err := cs.NewInputVariable(assigned(0))
	assert.NoError(err)
	cs.MarkBoolean(b)

	n, err := cs.NewLcVariable(LinearCombination{NewTerm(One, one), NewTerm(a, minusOne)})
	assert.NoError(err)
	cs.MarkBoolean(n)

	err = cs.EnforceConstraint(
		LinearCombination{NewTerm(a, one)},
		LinearCombination{NewTerm(b, one)},
		LinearCombination{NewTerm(n, one)},
	)
	assert.NoError(err)

	data, err := cs.ToBytes()
	assert.NoError(err)

	decoded, err := FromBytes(data)
	assert.NoError(err)

	assert.Equal(cs.NbPublic(), decoded.NbPublic())
	assert.Equal(cs.NbWitness(), decoded.NbWitness())
	assert.Equal(cs.NbSymbolicLcs(), decoded.NbSymbolicLcs())
	assert.Equal(cs.NbConstraints(), decoded.NbConstraints())
	assert.Equal(cs.constraints, decoded.constraints)
	assert.Equal(cs.lcs, decoded.lcs)
	assert.True(decoded.IsBoolean(a))
	assert.True(decoded.IsBoolean(b))
	assert.True(decoded.IsBoolean(n))

	// assignments are not part of the shape
	_, err = decoded.VariableValue(a)
	assert.ErrorIs(err, ErrAssignmentMissing)
}
