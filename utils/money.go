package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount formats an amount in atomic currency units (hundredths) as a
// display string like "$1,234.56". Atomic totals from the order adapter must
// be divided by 100 for display; this helper owns that conversion.
func FormatAmount(atomic int64) string {
	neg := atomic < 0
	if neg {
		atomic = -atomic
	}

	units := atomic / 100
	cents := atomic % 100

	s := strconv.FormatInt(units, 10)

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + "$" + ".cc"
	b.Grow(len(s) + len(s)/3 + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	b.WriteString(fmt.Sprintf(".%02d", cents))
	return b.String()
}
