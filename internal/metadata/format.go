package metadata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// rational is an EXIF rational value. A zero denominator means the value is
// unusable and the corresponding field stays absent.
type rational struct {
	num, den int64
}

func (r rational) value() float64 {
	return float64(r.num) / float64(r.den)
}

// dmsToDegrees converts a degrees/minutes/seconds triplet to decimal
// degrees. Any zero denominator aborts the conversion.
func dmsToDegrees(dms [3]rational) (float64, bool) {
	for _, c := range dms {
		if c.den == 0 {
			return 0, false
		}
	}
	return dms[0].value() + dms[1].value()/60.0 + dms[2].value()/3600.0, true
}

// formatShutter renders an exposure time: "1/250s" for sub-second values,
// "2s" for whole seconds, "0s" for a decoded value of exactly zero.
func formatShutter(v float64) string {
	if v == 0 {
		return "0s"
	}
	if v < 1 {
		return fmt.Sprintf("1/%ds", int64(math.Round(1/v)))
	}
	return fmt.Sprintf("%ds", int64(v))
}

// floatString renders a float with minimal digits but always at least one
// decimal place, so f/2 reads "f/2.0" and a 50mm lens reads "50.0mm".
func floatString(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func roundToInt(v float64) int64 {
	return int64(math.Round(v))
}
