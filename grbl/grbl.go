// Package grbl is the thin wire-format layer the status reporter and
// command-ingestion transport call into: status-line and settings-line
// formatting, real-time single-byte control decoding, and the error/
// alarm code table for this core's own rejection and fatal paths. It
// is not a serial transport — framing, buffering, and opening the UART
// remain out of scope (spec §1) — only the formatting/parsing logic a
// transport layer calls into.
package grbl

import (
	"fmt"

	"tinygo.org/x/grblmotion/kinematics"
)

// CustomError is a lightweight error type in the teacher's idiom.
type CustomError string

func (e CustomError) Error() string { return string(e) }

// State is the reported machine state (spec §6: "State ∈ {Idle, Run,
// Hold, Alarm}").
type State int

const (
	Idle State = iota
	Run
	Hold
	Alarm
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Run:
		return "Run"
	case Hold:
		return "Hold"
	case Alarm:
		return "Alarm"
	default:
		return "Unknown"
	}
}

// StatusLine formats the bit-exact status report (spec §6):
// "<State|MPos:X,Y,Z|WPos:X,Y,Z>\r\n", three fixed decimals. Only X/Y/Z
// are reported, matching upstream GRBL's wire format even though this
// core tracks a fourth (A) axis internally.
func StatusLine(state State, mpos, wpos [kinematics.NumAxes]float32) string {
	return fmt.Sprintf("<%s|MPos:%.3f,%.3f,%.3f|WPos:%.3f,%.3f,%.3f>\r\n",
		state,
		mpos[kinematics.AxisX], mpos[kinematics.AxisY], mpos[kinematics.AxisZ],
		wpos[kinematics.AxisX], wpos[kinematics.AxisY], wpos[kinematics.AxisZ])
}

// SettingLine formats one `$id=value\r\n` settings report line (spec
// §6: "100–103 steps/mm per axis, 110–113 max rate, 120–123
// acceleration, 130–133 max travel, 11 junction deviation, 12 arc
// tolerance").
func SettingLine(id kinematics.SettingID, value float32) string {
	return fmt.Sprintf("$%d=%.3f\r\n", id, value)
}

// Ok is the acknowledgement line for a successful command.
func Ok() string { return "ok\r\n" }

// ErrorLine formats a rejection (spec §7 "Rejection"): command
// discarded, admission state unchanged.
func ErrorLine(code int, desc string) string {
	return fmt.Sprintf("error:%d - %s\r\n", code, desc)
}

// AlarmLine formats a hardware-safety-fatal transition (spec §7
// "Hardware-safety fatal"): motion disabled until an explicit clear.
func AlarmLine(code int, desc string) string {
	return fmt.Sprintf("ALARM:%d - %s\r\n", code, desc)
}

// Rejection error codes for this core's own admission-path failures
// (spec §7 "Rejection"). These number only the subset of the GRBL
// error-code space this core itself raises; the full upstream table
// belongs to the command parser, out of scope per spec §1.
const (
	ErrorZeroLengthBlock   = 1
	ErrorDegenerateArc     = 2
	ErrorUnsupportedPlane  = 3
	ErrorSettingRejected   = 4
)

var errorText = map[int]string{
	ErrorZeroLengthBlock:  "zero-length block",
	ErrorDegenerateArc:    "degenerate arc",
	ErrorUnsupportedPlane: "unsupported arc plane",
	ErrorSettingRejected:  "setting value rejected",
}

// ErrorText looks up the description for one of this core's rejection
// codes; the empty string if code is not one of ours.
func ErrorText(code int) string { return errorText[code] }

// Hardware-safety-fatal alarm codes (spec §7 "Hardware-safety fatal").
const (
	AlarmHardLimit = 1
	AlarmEStop     = 2
	AlarmThermal   = 3
)

var alarmText = map[int]string{
	AlarmHardLimit: "hard limit triggered",
	AlarmEStop:     "emergency stop",
	AlarmThermal:   "over-temperature",
}

// AlarmText looks up the description for one of this core's alarm
// codes; the empty string if code is not one of ours.
func AlarmText(code int) string { return alarmText[code] }

// Realtime is a decoded real-time single-byte control (spec §6):
// recognized by the transport layer and signaled to the manager
// directly, never buffered through the command pipeline.
type Realtime int

const (
	RealtimeNone Realtime = iota
	RealtimeStatusQuery
	RealtimeFeedHold
	RealtimeCycleStart
	RealtimeSoftReset
)

// DecodeRealtime classifies one incoming byte as a real-time control,
// or RealtimeNone if it is an ordinary command-stream byte.
func DecodeRealtime(b byte) Realtime {
	switch b {
	case '?':
		return RealtimeStatusQuery
	case '!':
		return RealtimeFeedHold
	case '~':
		return RealtimeCycleStart
	case 0x18:
		return RealtimeSoftReset
	default:
		return RealtimeNone
	}
}
