// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package ordinate

import "testing"

func TestToTimecode(t *testing.T) {
	tc, err := ToTimecode(Int(86400), 24, false)
	if err != nil {
		t.Fatalf("ToTimecode error: %v", err)
	}
	if tc != "01:00:00:00" {
		t.Errorf("ToTimecode(86400 @ 24) = %q, want 01:00:00:00", tc)
	}
}

func TestFromTimecodeRoundTrip(t *testing.T) {
	cases := []string{"00:00:01:00", "00:10:05:17", "01:00:00:00"}
	for _, want := range cases {
		frame, err := FromTimecode(want, 24)
		if err != nil {
			t.Fatalf("FromTimecode(%q) error: %v", want, err)
		}
		got, err := ToTimecode(frame, 24, false)
		if err != nil {
			t.Fatalf("ToTimecode error: %v", err)
		}
		if got != want {
			t.Errorf("round trip %q -> %v -> %q", want, frame, got)
		}
	}
}

func TestFromTimecodeInvalid(t *testing.T) {
	if _, err := FromTimecode("not a timecode", 24); err == nil {
		t.Error("expected an error for malformed timecode")
	}
}

func TestToTimeString(t *testing.T) {
	if got := ToTimeString(Int(3661)); got != "01:01:01.0" {
		t.Errorf("ToTimeString(3661) = %q, want 01:01:01.0", got)
	}
}

func TestDropFrameRates(t *testing.T) {
	if !IsSMPTETimecodeRate(29.97) || IsSMPTETimecodeRate(17) {
		t.Error("SMPTE rate detection is wrong")
	}
	// The first two frame numbers of every minute (except each tenth) are
	// skipped, so frame 1800 displays as ;02.
	tc, err := ToTimecode(Int(1800), 29.97, true)
	if err != nil {
		t.Fatalf("ToTimecode error: %v", err)
	}
	if tc != "00:01:00;02" {
		t.Errorf("ToTimecode(1800 @ 29.97 DF) = %q, want 00:01:00;02", tc)
	}
	frame, err := FromTimecode("00:00:30;15", 29.97)
	if err != nil {
		t.Fatalf("FromTimecode error: %v", err)
	}
	if !frame.Equal(Int(915)) {
		t.Errorf("FromTimecode(00:00:30;15) = %v, want 915", frame)
	}
}

func TestDropFrameRoundTripAcrossBlocks(t *testing.T) {
	// 30000 frames at 29.97 lies in the second ten-minute block, in minute
	// 16; fifteen dropped minutes have skipped 30 frame numbers by then.
	for _, frames := range []int64{0, 1799, 1800, 17981, 17982, 30000} {
		tc, err := ToTimecode(Int(frames), 29.97, true)
		if err != nil {
			t.Fatalf("ToTimecode(%d) error: %v", frames, err)
		}
		back, err := FromTimecode(tc, 29.97)
		if err != nil {
			t.Fatalf("FromTimecode(%q) error: %v", tc, err)
		}
		if !back.Equal(Int(frames)) {
			t.Errorf("round trip %d -> %q -> %v", frames, tc, back)
		}
	}
	tc, err := ToTimecode(Int(17982), 29.97, true)
	if err != nil {
		t.Fatalf("ToTimecode error: %v", err)
	}
	if tc != "00:10:00;00" {
		t.Errorf("ToTimecode(17982 @ 29.97 DF) = %q, want 00:10:00;00", tc)
	}
}
