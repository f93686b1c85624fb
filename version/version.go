// Package version orders dotted numeric version strings such as "1.0"
// or "2.3.1". Ordering is by numeric segment, so "2.0" > "1.10" > "1.9",
// unlike plain string comparison.
package version

import (
	"slices"
	"strconv"
	"strings"
)

// Compare returns -1, 0, or 1 according to whether a is ordered before,
// equal to, or after b. Segments are compared numerically from the left;
// a version that is a prefix of a longer one orders first ("1.2" < "1.2.1").
// Equal strings are always equal, and distinct strings never tie: when all
// segments compare numerically equal the raw strings break the tie.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := min(len(as), len(bs))
	for i := 0; i < n; i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	if len(as) != len(bs) {
		if len(as) < len(bs) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func compareSegment(a, b string) int {
	an, aerr := strconv.ParseUint(a, 10, 64)
	bn, berr := strconv.ParseUint(b, 10, 64)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	// non-numeric segments order after numeric ones
	if aerr == nil {
		return -1
	}
	if berr == nil {
		return 1
	}
	return strings.Compare(a, b)
}

// Less reports whether a orders strictly before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts vs ascending in place.
func Sort(vs []string) {
	slices.SortFunc(vs, Compare)
}

// Insert returns vs with v inserted in order, unless v is already present.
// vs must already be sorted ascending.
func Insert(vs []string, v string) []string {
	i, found := slices.BinarySearchFunc(vs, v, Compare)
	if found {
		return vs
	}
	return slices.Insert(vs, i, v)
}
