// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ordinate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// smpteRates lists the frame rates SMPTE timecode defines.
var smpteRates = []float64{23.976, 24, 25, 29.97, 30, 50, 59.94, 60}

// IsSMPTETimecodeRate returns true if the rate is supported by SMPTE timecode.
func IsSMPTETimecodeRate(rate float64) bool {
	for _, r := range smpteRates {
		if math.Abs(rate-r) < 0.01 {
			return true
		}
	}
	return false
}

// dropPerMinute returns how many frame numbers drop-frame timecode skips at
// the top of each minute not divisible by ten.
func dropPerMinute(nominal int64) int64 {
	if nominal >= 60 {
		return 4
	}
	return 2
}

// frameCount extracts an integer frame count from o, exactly for integral
// rationals and by rounding otherwise.
func frameCount(o Ordinate) (int64, error) {
	if o.IsNaN() || o.IsInf() {
		return 0, fmt.Errorf("invalid frame count %s", o)
	}
	if o.IsRational() && o.Denominator() == 1 {
		return o.Numerator(), nil
	}
	return int64(math.Round(o.ToFloat())), nil
}

// ToTimecode renders frame, a frame count at the given rate, as SMPTE
// timecode: "HH:MM:SS:FF", or "HH:MM:SS;FF" when dropFrame is set.
//
// Drop-frame timecode skips the first frame numbers at the top of every
// minute not divisible by ten, so the frame count is first converted to the
// nominal display count by adding back everything skipped up to and
// including its own minute. The same minute count drives FromTimecode's
// subtraction, keeping the two exact inverses.
func ToTimecode(frame Ordinate, rate float64, dropFrame bool) (string, error) {
	total, err := frameCount(frame)
	if err != nil {
		return "", err
	}
	if total < 0 {
		return "", fmt.Errorf("negative timecode not supported")
	}
	nominal := int64(math.Round(rate))

	sep := ":"
	display := total
	if dropFrame {
		sep = ";"
		drop := dropPerMinute(nominal)
		minuteFrames := nominal*60 - drop
		blockFrames := minuteFrames*10 + drop

		blocks := total / blockFrames
		rem := total % blockFrames
		minutes := blocks * 10
		// The first minute of each ten-minute block keeps its full
		// nominal*60 frames; the following nine are short by drop each.
		if rem >= nominal*60 {
			minutes += 1 + (rem-nominal*60)/minuteFrames
		}
		display = total + drop*(minutes-minutes/10)
	}

	ff := display % nominal
	ss := display / nominal % 60
	mm := display / nominal / 60 % 60
	hh := display / nominal / 3600
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", hh, mm, ss, sep, ff), nil
}

var timecodePattern = regexp.MustCompile(`^(-?)(\d{1,2}):(\d{2}):(\d{2})([:;])(\d{2,})$`)

// FromTimecode parses a timecode string into a frame-count Ordinate at
// rate. A ";" frame separator marks drop-frame timecode.
func FromTimecode(timecode string, rate float64) (Ordinate, error) {
	m := timecodePattern.FindStringSubmatch(timecode)
	if m == nil {
		return ZERO, fmt.Errorf("invalid timecode format: %s", timecode)
	}
	hh, _ := strconv.ParseInt(m[2], 10, 64)
	mm, _ := strconv.ParseInt(m[3], 10, 64)
	ss, _ := strconv.ParseInt(m[4], 10, 64)
	ff, _ := strconv.ParseInt(m[6], 10, 64)

	nominal := int64(math.Round(rate))
	minutes := hh*60 + mm
	total := (minutes*60+ss)*nominal + ff
	if m[5] == ";" {
		total -= dropPerMinute(nominal) * (minutes - minutes/10)
	}
	if m[1] == "-" {
		total = -total
	}
	return Int(total), nil
}

// ToTimeString renders seconds as "HH:MM:SS.fraction", trimming trailing
// zeros from the fraction but always keeping at least one digit.
func ToTimeString(seconds Ordinate) string {
	v := seconds.ToFloat()
	prefix := ""
	if v < 0 {
		prefix = "-"
		v = -v
	}
	hh := int64(v / 3600)
	mm := int64(v/60) % 60
	ss := math.Mod(v, 60)

	frac := strconv.FormatFloat(ss-math.Floor(ss), 'f', 6, 64)[1:]
	frac = strings.TrimRight(frac, "0")
	if frac == "." {
		frac = ".0"
	}
	return fmt.Sprintf("%s%02d:%02d:%02d%s", prefix, hh, mm, int64(ss), frac)
}
