package models

import "testing"

// TestLabelRoundTrip verifies type-to-label mapping both directions
func TestLabelRoundTrip(t *testing.T) {
	for _, vt := range []ViolationType{
		ViolationProfanity,
		ViolationHarassment,
		ViolationOffensive,
		ViolationDiscordInvite,
		ViolationSpamShouting,
	} {
		if got := TypeFromLabel(vt.Label()); got != vt {
			t.Errorf("TypeFromLabel(%q) = %v, want %v", vt.Label(), got, vt)
		}
	}
}

// TestTypeFromUnknownLabel verifies invented labels map to unknown
func TestTypeFromUnknownLabel(t *testing.T) {
	if got := TypeFromLabel("một nhãn bịa đặt"); got != ViolationUnknown {
		t.Errorf("TypeFromLabel = %v, want %v", got, ViolationUnknown)
	}
}

// TestClampConfidence verifies out-of-range confidences are clamped
func TestClampConfidence(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.7, 1},
	}

	for _, tc := range cases {
		v := Verdict{Confidence: tc.in}
		v.ClampConfidence()
		if v.Confidence != tc.want {
			t.Errorf("ClampConfidence(%v) = %v, want %v", tc.in, v.Confidence, tc.want)
		}
	}
}
