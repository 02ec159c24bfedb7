package probability

import "statref/domain/core"

func checkOverlap(op string, a, b, ab int) error {
	if a < 0 || b < 0 || ab < 0 {
		return core.NewDomainError(op, "set sizes must be >= 0 (|A|=%d, |B|=%d, |A∩B|=%d)", a, b, ab)
	}
	if ab > a || ab > b {
		return core.NewDomainError(op, "|A∩B|=%d exceeds |A|=%d or |B|=%d", ab, a, b)
	}
	return nil
}

// UnionCount returns |A∪B| = |A| + |B| − |A∩B|
func UnionCount(a, b, ab int) (int, error) {
	if err := checkOverlap("union_count", a, b, ab); err != nil {
		return 0, err
	}
	return a + b - ab, nil
}

// SetSizes holds the cardinalities for a three-set Venn diagram
type SetSizes struct {
	A, B, C    int
	AB, AC, BC int
	ABC        int
}

// UnionCount3 returns |A∪B∪C| by inclusion–exclusion
func UnionCount3(s SetSizes) (int, error) {
	const op = "union_count3"
	if err := checkOverlap(op, s.A, s.B, s.AB); err != nil {
		return 0, err
	}
	if err := checkOverlap(op, s.A, s.C, s.AC); err != nil {
		return 0, err
	}
	if err := checkOverlap(op, s.B, s.C, s.BC); err != nil {
		return 0, err
	}
	if s.ABC < 0 || s.ABC > s.AB || s.ABC > s.AC || s.ABC > s.BC {
		return 0, core.NewDomainError(op, "|A∩B∩C|=%d must be in [0, min pairwise intersection]", s.ABC)
	}
	u := s.A + s.B + s.C - s.AB - s.AC - s.BC + s.ABC
	if u < 0 {
		return 0, core.NewDomainError(op, "inconsistent cardinalities give |A∪B∪C|=%d", u)
	}
	return u, nil
}

// DifferenceCount returns |A \ B| = |A| − |A∩B|
func DifferenceCount(a, ab int) (int, error) {
	if a < 0 || ab < 0 || ab > a {
		return 0, core.NewDomainError("difference_count", "|A∩B|=%d must be in [0, |A|=%d]", ab, a)
	}
	return a - ab, nil
}
