package statuspanel

import "testing"

func TestFormatFixedMatchesGrblThreeDecimalConvention(t *testing.T) {
	cases := map[float32]string{
		0:       "0.000",
		1.5:     "1.500",
		-2.25:   "-2.250",
		123.456: "123.456",
	}
	for in, want := range cases {
		if got := formatFixed(in); got != want {
			t.Errorf("formatFixed(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestItoaZero(t *testing.T) {
	if got := itoa(0); got != "0" {
		t.Errorf("itoa(0) = %q, want \"0\"", got)
	}
}

func TestPad3(t *testing.T) {
	cases := map[int32]string{0: "000", 5: "005", 42: "042", 500: "500"}
	for in, want := range cases {
		if got := pad3(in); got != want {
			t.Errorf("pad3(%d) = %q, want %q", in, got, want)
		}
	}
}
