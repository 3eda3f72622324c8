package grbl

import (
	"testing"

	"tinygo.org/x/grblmotion/kinematics"
)

func TestStatusLineFormat(t *testing.T) {
	mpos := [kinematics.NumAxes]float32{1.5, -2.25, 0, 0}
	wpos := [kinematics.NumAxes]float32{1.5, -2.25, 0, 0}
	got := StatusLine(Run, mpos, wpos)
	want := "<Run|MPos:1.500,-2.250,0.000|WPos:1.500,-2.250,0.000>\r\n"
	if got != want {
		t.Errorf("StatusLine = %q, want %q", got, want)
	}
}

func TestSettingLineFormat(t *testing.T) {
	got := SettingLine(kinematics.SettingStepsPerMM+kinematics.AxisX, 250)
	want := "$100=250.000\r\n"
	if got != want {
		t.Errorf("SettingLine = %q, want %q", got, want)
	}
}

func TestErrorAndAlarmLineFormat(t *testing.T) {
	if got, want := ErrorLine(ErrorDegenerateArc, ErrorText(ErrorDegenerateArc)), "error:2 - degenerate arc\r\n"; got != want {
		t.Errorf("ErrorLine = %q, want %q", got, want)
	}
	if got, want := AlarmLine(AlarmHardLimit, AlarmText(AlarmHardLimit)), "ALARM:1 - hard limit triggered\r\n"; got != want {
		t.Errorf("AlarmLine = %q, want %q", got, want)
	}
}

func TestDecodeRealtimeControls(t *testing.T) {
	cases := map[byte]Realtime{
		'?':  RealtimeStatusQuery,
		'!':  RealtimeFeedHold,
		'~':  RealtimeCycleStart,
		0x18: RealtimeSoftReset,
		'G':  RealtimeNone,
	}
	for b, want := range cases {
		if got := DecodeRealtime(b); got != want {
			t.Errorf("DecodeRealtime(%q) = %v, want %v", b, got, want)
		}
	}
}
