package constraint

import "strconv"

// VariableKind partitions the wires of a ConstraintSystem.
type VariableKind uint8

const (
	// KindZero is the reserved handle denoting the field constant 0.
	KindZero VariableKind = iota
	// KindOne is the reserved handle denoting the field constant 1.
	KindOne
	// KindPublic denotes a public input wire.
	KindPublic
	// KindWitness denotes a private witness wire.
	KindWitness
	// KindSymbolicLc denotes a wire bound to a purely affine expression.
	KindSymbolicLc
)

// Variable is an opaque handle to a wire in a ConstraintSystem. The zero
// value is the reserved constant-0 handle.
type Variable struct {
	kind  VariableKind
	index int
}

// Reserved constant handles. They never carry a booleanity constraint;
// their values are fixed at circuit-description time.
var (
	Zero = Variable{kind: KindZero}
	One  = Variable{kind: KindOne}
)

// Kind returns which partition of the system the variable lives in.
func (v Variable) Kind() VariableKind {
	return v.kind
}

// Index returns the variable's index within its partition.
func (v Variable) Index() int {
	return v.index
}

// IsConstant reports whether v is one of the two reserved handles.
func (v Variable) IsConstant() bool {
	return v.kind == KindZero || v.kind == KindOne
}

func (v Variable) String() string {
	switch v.kind {
	case KindZero:
		return "0"
	case KindOne:
		return "1"
	case KindPublic:
		return "p" + strconv.Itoa(v.index)
	case KindWitness:
		return "w" + strconv.Itoa(v.index)
	case KindSymbolicLc:
		return "lc" + strconv.Itoa(v.index)
	default:
		return "?"
	}
}
