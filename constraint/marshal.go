package constraint

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"
)

// serialized forms hold coefficients in regular (non-Montgomery) byte
// representation so the encoding is canonical across platforms.

type serializedVariable struct {
	Kind  uint8 `cbor:"k"`
	Index int   `cbor:"i"`
}

type serializedTerm struct {
	Coeff    []byte             `cbor:"c"`
	Variable serializedVariable `cbor:"v"`
}

type serializedR1C struct {
	L []serializedTerm `cbor:"l"`
	R []serializedTerm `cbor:"r"`
	O []serializedTerm `cbor:"o"`
}

type serializedSystem struct {
	NbPublic       int                `cbor:"nbPublic"`
	NbWitness      int                `cbor:"nbWitness"`
	Lcs            [][]serializedTerm `cbor:"lcs"`
	Constraints    []serializedR1C    `cbor:"constraints"`
	BooleanPublic  []byte             `cbor:"booleanPublic"`
	BooleanWitness []byte             `cbor:"booleanWitness"`
	BooleanLc      []byte             `cbor:"booleanLc"`
}

func serializeLc(lc LinearCombination) []serializedTerm {
	if lc == nil {
		return nil
	}
	res := make([]serializedTerm, len(lc))
	for i, t := range lc {
		b := t.Coeff.Bytes()
		res[i] = serializedTerm{
			Coeff:    b[:],
			Variable: serializedVariable{Kind: uint8(t.Variable.kind), Index: t.Variable.index},
		}
	}
	return res
}

func deserializeLc(terms []serializedTerm) (LinearCombination, error) {
	if terms == nil {
		return nil, nil
	}
	res := make(LinearCombination, len(terms))
	for i, t := range terms {
		if len(t.Coeff) != fr.Bytes {
			return nil, fmt.Errorf("decode coefficient: got %d bytes, want %d", len(t.Coeff), fr.Bytes)
		}
		var coeff fr.Element
		coeff.SetBytes(t.Coeff)
		res[i] = Term{
			Coeff:    coeff,
			Variable: Variable{kind: VariableKind(t.Variable.Kind), index: t.Variable.Index},
		}
	}
	return res, nil
}

// ToBytes serializes the circuit shape (wire counts, symbolic lcs,
// constraints and boolean marks). Assignments are not part of the shape
// and are not serialized. It fails in counting mode, where no shape
// data exists.
func (cs *ConstraintSystem) ToBytes() ([]byte, error) {
	if !cs.constructMatrices {
		return nil, ErrMatricesNotConstructed
	}

	s := serializedSystem{
		NbPublic:    cs.NbPublic(),
		NbWitness:   cs.NbWitness(),
		Lcs:         make([][]serializedTerm, len(cs.lcs)),
		Constraints: make([]serializedR1C, len(cs.constraints)),
	}
	for i, lc := range cs.lcs {
		s.Lcs[i] = serializeLc(lc)
	}
	for i, c := range cs.constraints {
		s.Constraints[i] = serializedR1C{
			L: serializeLc(c.L),
			R: serializeLc(c.R),
			O: serializeLc(c.O),
		}
	}
	var err error
	if s.BooleanPublic, err = cs.booleanPublic.MarshalBinary(); err != nil {
		return nil, err
	}
	if s.BooleanWitness, err = cs.booleanWitness.MarshalBinary(); err != nil {
		return nil, err
	}
	if s.BooleanLc, err = cs.booleanLc.MarshalBinary(); err != nil {
		return nil, err
	}

	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return enc.Marshal(&s)
}

// FromBytes reconstructs a system serialized with ToBytes. The result
// is in materializing mode with all non-constant assignments absent.
func FromBytes(data []byte) (*ConstraintSystem, error) {
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, err
	}
	var s serializedSystem
	if err := dm.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode constraint system: %w", err)
	}

	cs := NewConstraintSystem(WithCapacity(len(s.Constraints)))
	cs.public = make([]fr.Element, s.NbPublic+1)
	cs.public[0] = fr.One()
	cs.witness = make([]fr.Element, s.NbWitness)
	cs.nbLcs = len(s.Lcs)
	cs.lcs = make([]LinearCombination, len(s.Lcs))
	for i, terms := range s.Lcs {
		if cs.lcs[i], err = deserializeLc(terms); err != nil {
			return nil, err
		}
	}
	cs.constraints = make([]R1C, len(s.Constraints))
	cs.nbConstraints = len(s.Constraints)
	for i, c := range s.Constraints {
		var r1c R1C
		if r1c.L, err = deserializeLc(c.L); err != nil {
			return nil, err
		}
		if r1c.R, err = deserializeLc(c.R); err != nil {
			return nil, err
		}
		if r1c.O, err = deserializeLc(c.O); err != nil {
			return nil, err
		}
		cs.constraints[i] = r1c
	}
	if err := cs.booleanPublic.UnmarshalBinary(s.BooleanPublic); err != nil {
		return nil, err
	}
	if err := cs.booleanWitness.UnmarshalBinary(s.BooleanWitness); err != nil {
		return nil, err
	}
	if err := cs.booleanLc.UnmarshalBinary(s.BooleanLc); err != nil {
		return nil, err
	}
	return cs, nil
}
