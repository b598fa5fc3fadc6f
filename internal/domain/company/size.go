package company

import "strings"

// SizeRange is one of the dataset's fixed employee-count buckets.
type SizeRange string

// Size buckets, smallest to largest.
const (
	Size1To10        SizeRange = "1 - 10"
	Size11To50       SizeRange = "11 - 50"
	Size51To200      SizeRange = "51 - 200"
	Size201To500     SizeRange = "201 - 500"
	Size501To1000    SizeRange = "501 - 1000"
	Size1001To5000   SizeRange = "1001 - 5000"
	Size5001To10000  SizeRange = "5001 - 10000"
	Size10001AndMore SizeRange = "10001+"
)

var sizeOrder = []SizeRange{
	Size1To10, Size11To50, Size51To200, Size201To500,
	Size501To1000, Size1001To5000, Size5001To10000, Size10001AndMore,
}

var sizeByCompact = func() map[string]SizeRange {
	m := make(map[string]SizeRange, len(sizeOrder))
	for _, s := range sizeOrder {
		m[compact(string(s))] = s
	}
	return m
}()

// SizeRanges returns all buckets in ordinal order.
func SizeRanges() []SizeRange {
	out := make([]SizeRange, len(sizeOrder))
	copy(out, sizeOrder)
	return out
}

// ParseSizeRange accepts a bucket with or without spaces around the dash ("1-10", "1 - 10").
func ParseSizeRange(s string) (SizeRange, bool) {
	r, ok := sizeByCompact[compact(s)]
	return r, ok
}

// IsValid reports whether s is a canonical bucket.
func (s SizeRange) IsValid() bool {
	return s.Ordinal() >= 0
}

// Ordinal returns the bucket position (0 = smallest) or -1 for an unknown value.
func (s SizeRange) Ordinal() int {
	for i, r := range sizeOrder {
		if r == s {
			return i
		}
	}
	return -1
}

func (s SizeRange) String() string { return string(s) }

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
