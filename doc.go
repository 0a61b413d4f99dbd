// Package boolcs provides a single-bit gadget layer over a Rank-1
// Constraint System (R1CS), for use in zero-knowledge proof circuits.
//
// The gadgets/boolean package is the entry point: it allocates variables
// provably restricted to {0,1} and composes them with NOT, AND, OR, XOR,
// AND-NOT and NOR, each adding at most one multiplicative constraint.
// The constraint package provides the R1CS engine the gadgets build on,
// instantiated over the BN254 scalar field.
package boolcs
