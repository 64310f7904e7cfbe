package appointment

const (
	MinHour = 1
	MaxHour = 23
)

// ClampMonth forces m into [1,12].
func ClampMonth(m int) int {
	return clamp(m, 1, 12)
}

// DayLimit returns the last day of month on a non-leap calendar. The month
// is clamped first.
func DayLimit(month int) int {
	switch ClampMonth(month) {
	case 2:
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// ClampDay forces d into [1, DayLimit(month)].
func ClampDay(month, d int) int {
	return clamp(d, 1, DayLimit(month))
}

// ClampHour forces h into [1,23]. Midnight is not bookable.
func ClampHour(h int) int {
	return clamp(h, MinHour, MaxHour)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
