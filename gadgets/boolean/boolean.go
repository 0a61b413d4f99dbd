package boolean

// Boolean is either a compile-time constant or an allocated bit. It is
// the type most circuits should use: operations on constants fold away
// without touching the constraint system, and only variable operands
// dispatch to AllocatedBool.
type Boolean struct {
	// alloc is nil for constants; constant is only meaningful then.
	alloc    *AllocatedBool
	constant bool
}

// Const wraps a compile-time constant.
func Const(v bool) Boolean {
	return Boolean{constant: v}
}

// Var wraps an allocated bit.
func Var(b *AllocatedBool) Boolean {
	return Boolean{alloc: b}
}

// IsConstant reports whether b is the constant variant.
func (b Boolean) IsConstant() bool {
	return b.alloc == nil
}

// Allocated returns the underlying AllocatedBool if b is the variable
// variant.
func (b Boolean) Allocated() (*AllocatedBool, bool) {
	if b.alloc == nil {
		return nil, false
	}
	return b.alloc, true
}

// Value returns the boolean's value. Constants always have one.
func (b Boolean) Value() (bool, error) {
	if b.alloc == nil {
		return b.constant, nil
	}
	return b.alloc.Value()
}

// Not returns ¬b. Constant operands fold; variable operands cost
// nothing either since negation is affine.
func (b Boolean) Not() (Boolean, error) {
	if b.alloc == nil {
		return Const(!b.constant), nil
	}
	n, err := b.alloc.Not()
	if err != nil {
		return Boolean{}, err
	}
	return Var(n), nil
}

// And returns a ∧ b, folding when either operand is constant.
func (a Boolean) And(b Boolean) (Boolean, error) {
	switch {
	case a.alloc == nil && !a.constant:
		return Const(false), nil
	case a.alloc == nil:
		return b, nil
	case b.alloc == nil && !b.constant:
		return Const(false), nil
	case b.alloc == nil:
		return a, nil
	}
	res, err := a.alloc.And(b.alloc)
	if err != nil {
		return Boolean{}, err
	}
	return Var(res), nil
}

// Or returns a ∨ b, folding when either operand is constant.
func (a Boolean) Or(b Boolean) (Boolean, error) {
	switch {
	case a.alloc == nil && a.constant:
		return Const(true), nil
	case a.alloc == nil:
		return b, nil
	case b.alloc == nil && b.constant:
		return Const(true), nil
	case b.alloc == nil:
		return a, nil
	}
	res, err := a.alloc.Or(b.alloc)
	if err != nil {
		return Boolean{}, err
	}
	return Var(res), nil
}

// Xor returns a ⊕ b, folding when either operand is constant.
func (a Boolean) Xor(b Boolean) (Boolean, error) {
	switch {
	case a.alloc == nil && !a.constant:
		return b, nil
	case a.alloc == nil:
		return b.Not()
	case b.alloc == nil && !b.constant:
		return a, nil
	case b.alloc == nil:
		return a.Not()
	}
	res, err := a.alloc.Xor(b.alloc)
	if err != nil {
		return Boolean{}, err
	}
	return Var(res), nil
}

// Select returns ifTrue when cond holds and ifFalse otherwise. A
// constant condition selects at circuit-description time; a variable
// condition computes cond ∧ ifTrue ∨ ¬cond ∧ ifFalse. When both
// operands are variables the result is always the variable variant.
func (cond Boolean) Select(ifTrue, ifFalse Boolean) (Boolean, error) {
	if cond.alloc == nil {
		if cond.constant {
			return ifTrue, nil
		}
		return ifFalse, nil
	}

	trueBranch, err := cond.And(ifTrue)
	if err != nil {
		return Boolean{}, err
	}
	notCond, err := cond.Not()
	if err != nil {
		return Boolean{}, err
	}
	falseBranch, err := notCond.And(ifFalse)
	if err != nil {
		return Boolean{}, err
	}
	return trueBranch.Or(falseBranch)
}
