package unit

import "strings"

// Unit is a free-form symbolic unit token, e.g. "kg", "ug/l", "mg*min/l".
// The empty string and "-" are both treated as the dimensionless identity
// unit.
type Unit string

// IsDimensionless reports whether u denotes the identity unit.
func (u Unit) IsDimensionless() bool {
	s := strings.TrimSpace(string(u))
	return s == "" || s == "-"
}

// dimension is the exponent vector over the canonical base dimensions this
// package knows about. Two units are commensurable iff their dimension
// vectors are equal.
type dimension struct {
	mass, length, time, volume, molar int
}

func (d dimension) add(o dimension, sign int) dimension {
	return dimension{
		mass:   d.mass + sign*o.mass,
		length: d.length + sign*o.length,
		time:   d.time + sign*o.time,
		volume: d.volume + sign*o.volume,
		molar:  d.molar + sign*o.molar,
	}
}

// baseFactor is a single atomic unit token: its dimension (a pure base
// dimension with exponent 1) and its scale relative to that dimension's
// canonical unit.
type baseFactor struct {
	dim   dimension
	scale float64
}

// baseUnits is the fixed vocabulary of atomic tokens this package
// recognizes, each mapped to its dimension and its scale factor relative to
// the canonical unit of that dimension (kg, m, s, l, mol respectively).
var baseUnits = map[string]baseFactor{
	// Mass, canonical kg.
	"kg": {dim: dimension{mass: 1}, scale: 1},
	"g":  {dim: dimension{mass: 1}, scale: 1e-3},
	"mg": {dim: dimension{mass: 1}, scale: 1e-6},
	"ug": {dim: dimension{mass: 1}, scale: 1e-9},
	"ng": {dim: dimension{mass: 1}, scale: 1e-12},

	// Length, canonical m.
	"m":  {dim: dimension{length: 1}, scale: 1},
	"cm": {dim: dimension{length: 1}, scale: 1e-2},
	"mm": {dim: dimension{length: 1}, scale: 1e-3},

	// Time, canonical s.
	"s":   {dim: dimension{time: 1}, scale: 1},
	"sec": {dim: dimension{time: 1}, scale: 1},
	"min": {dim: dimension{time: 1}, scale: 60},
	"h":   {dim: dimension{time: 1}, scale: 3600},
	"d":   {dim: dimension{time: 1}, scale: 86400},

	// Volume, canonical l.
	"l":  {dim: dimension{volume: 1}, scale: 1},
	"dl": {dim: dimension{volume: 1}, scale: 1e-1},
	"ml": {dim: dimension{volume: 1}, scale: 1e-3},
	"ul": {dim: dimension{volume: 1}, scale: 1e-6},

	// Molar amount, canonical mol.
	"mol":  {dim: dimension{molar: 1}, scale: 1},
	"mmol": {dim: dimension{molar: 1}, scale: 1e-3},
	"umol": {dim: dimension{molar: 1}, scale: 1e-6},
	"nmol": {dim: dimension{molar: 1}, scale: 1e-9},
}

// decomposed is the parsed form of a Unit: its overall dimension vector and
// its scale factor relative to the canonical representation of that
// dimension.
type decomposed struct {
	dim   dimension
	scale float64
}

// decompose parses a unit token into a signed product of base factors.
// Tokens are separated by '*' (multiplication) and '/' (division); a
// leading token (before any operator) is implicitly multiplied.
func decompose(u Unit) (decomposed, error) {
	if u.IsDimensionless() {
		return decomposed{scale: 1}, nil
	}

	s := strings.TrimSpace(string(u))
	result := decomposed{scale: 1}
	sign := 1
	token := strings.Builder{}

	flush := func() error {
		t := strings.ToLower(strings.TrimSpace(token.String()))
		token.Reset()
		if t == "" {
			return nil
		}
		bf, ok := baseUnits[t]
		if !ok {
			return &ErrUnrecognizedToken{Token: t}
		}
		result.dim = result.dim.add(bf.dim, sign)
		if sign > 0 {
			result.scale *= bf.scale
		} else {
			result.scale /= bf.scale
		}
		return nil
	}

	for _, r := range s {
		switch r {
		case '*':
			if err := flush(); err != nil {
				return decomposed{}, err
			}
			sign = 1
		case '/':
			if err := flush(); err != nil {
				return decomposed{}, err
			}
			sign = -1
		default:
			token.WriteRune(r)
		}
	}
	if err := flush(); err != nil {
		return decomposed{}, err
	}
	return result, nil
}

// Commensurable reports whether values in unit a can be converted to unit b
// without loss of dimensional meaning.
func Commensurable(a, b Unit) (bool, error) {
	da, err := decompose(a)
	if err != nil {
		return false, err
	}
	db, err := decompose(b)
	if err != nil {
		return false, err
	}
	return da.dim == db.dim, nil
}

// Convert maps value from unit `from` to unit `to`. It fails explicitly
// (spec section 4.1) if the two units are not commensurable, rather than
// silently passing the raw value through.
func Convert(value float64, from, to Unit) (float64, error) {
	df, err := decompose(from)
	if err != nil {
		return 0, err
	}
	dt, err := decompose(to)
	if err != nil {
		return 0, err
	}
	if df.dim != dt.dim {
		return 0, &MismatchError{From: from, To: to}
	}
	// value * scale(from) is the canonical representation; dividing by
	// scale(to) expresses it in the target unit.
	return value * df.scale / dt.scale, nil
}
