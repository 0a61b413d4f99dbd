// Package constraint implements a Rank-1 Constraint System over the
// BN254 scalar field.
//
// A ConstraintSystem runs in one of two modes, fixed at construction:
// in materializing mode it stores full linear-combination data for every
// constraint, in counting mode it only tracks how many constraints a
// circuit would emit. Gadget layers query ShouldConstructMatrices and
// request the same constraint shape in both modes, so the estimated cost
// matches the materialized cost exactly.
package constraint

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkgadgets/boolcs/debug"
	"github.com/zkgadgets/boolcs/logger"
)

// ConstraintSystem holds the variables, assignments and constraints of a
// circuit under construction. It is not safe for concurrent use; circuit
// description appends constraints in a deterministic order.
type ConstraintSystem struct {
	constructMatrices bool

	// public[0] is the constant 1; real public inputs start at index 1.
	public          []fr.Element
	witness         []fr.Element
	publicAssigned  *bitset.BitSet
	witnessAssigned *bitset.BitSet

	// variables known to be 0 or 1, per partition (constrained once)
	booleanPublic  *bitset.BitSet
	booleanWitness *bitset.BitSet
	booleanLc      *bitset.BitSet

	// affine expressions backing symbolic-lc variables; only filled in
	// materializing mode, nbLcs counts allocations in both modes
	lcs   []LinearCombination
	nbLcs int

	constraints   []R1C
	nbConstraints int
}

type config struct {
	capacity          int
	constructMatrices bool
}

// Option configures a new ConstraintSystem.
type Option func(*config)

// WithCapacity preallocates storage for the expected number of constraints.
func WithCapacity(nbConstraints int) Option {
	return func(c *config) {
		c.capacity = nbConstraints
	}
}

// WithoutMatrices puts the system in counting mode: constraints are
// tallied but no linear-combination data is stored.
func WithoutMatrices() Option {
	return func(c *config) {
		c.constructMatrices = false
	}
}

// NewConstraintSystem returns an empty system in materializing mode
// unless WithoutMatrices is given.
func NewConstraintSystem(opts ...Option) *ConstraintSystem {
	cfg := config{constructMatrices: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	cs := &ConstraintSystem{
		constructMatrices: cfg.constructMatrices,
		public:            make([]fr.Element, 1, 8),
		witness:           make([]fr.Element, 0, cfg.capacity),
		publicAssigned:    bitset.New(8),
		witnessAssigned:   bitset.New(64),
		booleanPublic:     bitset.New(8),
		booleanWitness:    bitset.New(64),
		booleanLc:         bitset.New(64),
	}
	if cfg.constructMatrices {
		cs.constraints = make([]R1C, 0, cfg.capacity)
	}
	cs.public[0] = fr.One()
	cs.publicAssigned.Set(0)
	return cs
}

// ShouldConstructMatrices reports whether the system stores full
// linear-combination data or only counts constraints.
func (cs *ConstraintSystem) ShouldConstructMatrices() bool {
	return cs.constructMatrices
}

// NewInputVariable allocates a public input wire. The provider may fail;
// the wire is then allocated without an assignment and evaluating it
// returns ErrAssignmentMissing.
func (cs *ConstraintSystem) NewInputVariable(f func() (fr.Element, error)) (Variable, error) {
	idx := len(cs.public)
	v, err := f()
	if err == nil {
		cs.publicAssigned.Set(uint(idx))
	} else {
		v.SetZero()
	}
	cs.public = append(cs.public, v)
	return Variable{kind: KindPublic, index: idx}, nil
}

// NewWitnessVariable allocates a private witness wire. The provider may
// fail; see NewInputVariable.
func (cs *ConstraintSystem) NewWitnessVariable(f func() (fr.Element, error)) (Variable, error) {
	idx := len(cs.witness)
	v, err := f()
	if err == nil {
		cs.witnessAssigned.Set(uint(idx))
	} else {
		v.SetZero()
	}
	cs.witness = append(cs.witness, v)
	return Variable{kind: KindWitness, index: idx}, nil
}

// NewLcVariable allocates a wire bound to the affine expression lc.
// In counting mode the expression is discarded and only the identifier
// is produced, so identifiers stay consistent across both modes.
func (cs *ConstraintSystem) NewLcVariable(lc LinearCombination) (Variable, error) {
	idx := cs.nbLcs
	cs.nbLcs++
	if cs.constructMatrices {
		cs.lcs = append(cs.lcs, lc)
	}
	return Variable{kind: KindSymbolicLc, index: idx}, nil
}

// EnforceConstraint records l * r = o. It must not be called in counting
// mode; gadgets call IncrementConstraintCount there instead.
func (cs *ConstraintSystem) EnforceConstraint(l, r, o LinearCombination) error {
	if !cs.constructMatrices {
		return ErrMatricesNotConstructed
	}
	cs.constraints = append(cs.constraints, R1C{L: l, R: r, O: o})
	cs.nbConstraints++
	return nil
}

// IncrementConstraintCount tallies a constraint in counting mode.
func (cs *ConstraintSystem) IncrementConstraintCount() {
	cs.nbConstraints++
}

// NbConstraints returns the number of constraints recorded or tallied.
func (cs *ConstraintSystem) NbConstraints() int {
	return cs.nbConstraints
}

// NbPublic returns the number of public input wires, excluding the
// constant 1.
func (cs *ConstraintSystem) NbPublic() int {
	return len(cs.public) - 1
}

// NbWitness returns the number of private witness wires.
func (cs *ConstraintSystem) NbWitness() int {
	return len(cs.witness)
}

// NbSymbolicLcs returns the number of affine wires allocated.
func (cs *ConstraintSystem) NbSymbolicLcs() int {
	return cs.nbLcs
}

// MarkBoolean records that v is constrained (or algebraically implied)
// to be 0 or 1, so callers constrain each wire at most once.
func (cs *ConstraintSystem) MarkBoolean(v Variable) {
	switch v.kind {
	case KindZero, KindOne:
		// constants are inherently boolean
	case KindPublic:
		cs.booleanPublic.Set(uint(v.index))
	case KindWitness:
		cs.booleanWitness.Set(uint(v.index))
	case KindSymbolicLc:
		cs.booleanLc.Set(uint(v.index))
	}
}

// IsBoolean reports whether v was marked boolean.
func (cs *ConstraintSystem) IsBoolean(v Variable) bool {
	switch v.kind {
	case KindZero, KindOne:
		return true
	case KindPublic:
		return cs.booleanPublic.Test(uint(v.index))
	case KindWitness:
		return cs.booleanWitness.Test(uint(v.index))
	case KindSymbolicLc:
		return cs.booleanLc.Test(uint(v.index))
	default:
		return false
	}
}

// VariableValue returns the assigned value of v. Symbolic-lc wires are
// expanded recursively.
func (cs *ConstraintSystem) VariableValue(v Variable) (fr.Element, error) {
	switch v.kind {
	case KindZero:
		return fr.Element{}, nil
	case KindOne:
		return fr.One(), nil
	case KindPublic:
		debug.Assert(v.index < len(cs.public), "public variable out of range")
		if !cs.publicAssigned.Test(uint(v.index)) {
			return fr.Element{}, ErrAssignmentMissing
		}
		return cs.public[v.index], nil
	case KindWitness:
		debug.Assert(v.index < len(cs.witness), "witness variable out of range")
		if !cs.witnessAssigned.Test(uint(v.index)) {
			return fr.Element{}, ErrAssignmentMissing
		}
		return cs.witness[v.index], nil
	case KindSymbolicLc:
		if !cs.constructMatrices {
			return fr.Element{}, ErrMatricesNotConstructed
		}
		debug.Assert(v.index < len(cs.lcs), "symbolic lc out of range")
		return cs.EvalLinearCombination(cs.lcs[v.index])
	default:
		panic("unknown variable kind")
	}
}

// EvalLinearCombination evaluates lc under the current assignment.
func (cs *ConstraintSystem) EvalLinearCombination(lc LinearCombination) (fr.Element, error) {
	var acc, t fr.Element
	for i := range lc {
		v, err := cs.VariableValue(lc[i].Variable)
		if err != nil {
			return fr.Element{}, err
		}
		t.Mul(&lc[i].Coeff, &v)
		acc.Add(&acc, &t)
	}
	return acc, nil
}

// IsSatisfied checks every recorded constraint against the current
// assignment. It returns ErrAssignmentMissing if any involved wire has
// no value, and ErrMatricesNotConstructed in counting mode.
func (cs *ConstraintSystem) IsSatisfied() (bool, error) {
	if !cs.constructMatrices {
		return false, ErrMatricesNotConstructed
	}
	log := logger.Logger()
	for i := range cs.constraints {
		l, err := cs.EvalLinearCombination(cs.constraints[i].L)
		if err != nil {
			return false, err
		}
		r, err := cs.EvalLinearCombination(cs.constraints[i].R)
		if err != nil {
			return false, err
		}
		o, err := cs.EvalLinearCombination(cs.constraints[i].O)
		if err != nil {
			return false, err
		}
		var lr fr.Element
		lr.Mul(&l, &r)
		if !lr.Equal(&o) {
			log.Debug().Int("constraint", i).
				Str("L", cs.constraints[i].L.String()).
				Str("R", cs.constraints[i].R.String()).
				Str("O", cs.constraints[i].O.String()).
				Msg("unsatisfied constraint")
			return false, nil
		}
	}
	return true, nil
}
