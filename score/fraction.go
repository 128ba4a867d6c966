package score

import (
	"fmt"
	"math/big"

	"gopkg.in/yaml.v3"
)

// Fraction is an exact rational, written in files as "3/8", "0.25" or "2".
type Fraction struct {
	r *big.Rat
}

func Frac(a, b int64) Fraction {
	return Fraction{big.NewRat(a, b)}
}

func ParseFraction(s string) (Fraction, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Fraction{}, fmt.Errorf("invalid fraction %q", s)
	}
	return Fraction{r}, nil
}

// Rat never returns nil; the zero Fraction is 0.
func (f Fraction) Rat() *big.Rat {
	if f.r == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(f.r)
}

func (f Fraction) String() string {
	return f.Rat().RatString()
}

func (f *Fraction) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseFraction(value.Value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Fraction) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// round is round-half-to-even, matching how the original table generator
// rounded milliseconds.
func round(r *big.Rat) int64 {
	num := new(big.Int).Set(r.Num())
	den := r.Denom()
	q, m := new(big.Int).DivMod(num, den, new(big.Int))
	// q is floored, 0 <= m < den
	twice := new(big.Int).Mul(m, big.NewInt(2))
	switch twice.Cmp(den) {
	case 1:
		q.Add(q, big.NewInt(1))
	case 0:
		if q.Bit(0) == 1 {
			q.Add(q, big.NewInt(1))
		}
	}
	return q.Int64()
}
