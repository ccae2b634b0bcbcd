package sizing

import "math"

// Ratios closer than this to an integer are treated as that integer before
// rounding up, so that 2.0000000000000004 nodes stays 2 nodes.
const roundingTolerance = 1e-9

// MaxNodeCount caps every rounded count. A dimension that reaches it cannot be
// satisfied by the profile.
const MaxNodeCount = math.MaxInt32

// safeDiv returns a/b, or 0 when the divisor is not positive.
func safeDiv(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return a / b
}

// ceilTolerant rounds v up to the next integer, ignoring float noise around
// non-zero integers. Any positive v yields at least 1; the result saturates
// at MaxNodeCount.
func ceilTolerant(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= MaxNodeCount {
		return MaxNodeCount
	}
	if r := math.Round(v); r > 0 && math.Abs(v-r) <= roundingTolerance {
		return int(r)
	}
	return int(math.Ceil(v))
}

// ceilDiv is the node count needed to hold total with per-node capacity.
// A dimension without capacity needs no nodes.
func ceilDiv(total, capacity float64) int {
	if capacity <= 0 || total <= 0 {
		return 0
	}
	return ceilTolerant(total / capacity)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func floorInt(v float64) int {
	v = math.Floor(nonNegative(v) + roundingTolerance)
	if v >= math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}
