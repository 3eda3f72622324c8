package statuspanel

// glyph is a 3-column x 5-row bitmap; bit 2 is the leftmost column of
// each row, bit 0 the rightmost.
type glyph [5]uint8

// font covers exactly what a status line needs: digits, the sign and
// decimal-point punctuation the three-fixed-decimal formatting in
// grbl.StatusLine produces, and the four state-name initials (spec
// §6: "State ∈ {Idle, Run, Hold, Alarm}").
var font = map[rune]glyph{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	',': {0b000, 0b000, 0b000, 0b010, 0b100},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
}

const (
	glyphWidth  = 3
	glyphHeight = 5
	glyphGap    = 1
)
