package momir

// PrintMode is the user-selected output behaviour
type PrintMode string

const (
	ModeUnset PrintMode = ""
	ModeShow  PrintMode = "show"
	ModePrint PrintMode = "print"
	ModeRawBT PrintMode = "rawbt"
)

// PreferenceKey is the single key the print mode is persisted under
const PreferenceKey = "momir-printMode"

// Modes lists the selectable modes in display order
func Modes() []PrintMode {
	return []PrintMode{ModeShow, ModePrint, ModeRawBT}
}

// ParseMode converts a stored or submitted value into a known mode
func ParseMode(value string) (PrintMode, bool) {
	mode := PrintMode(value)
	if !mode.Valid() {
		return ModeUnset, false
	}
	return mode, true
}

// Valid reports whether the mode is one of the selectable modes
func (m PrintMode) Valid() bool {
	switch m {
	case ModeShow, ModePrint, ModeRawBT:
		return true
	default:
		return false
	}
}

// Label returns the text shown next to the mode selector
func (m PrintMode) Label() string {
	switch m {
	case ModeShow:
		return "Show"
	case ModePrint:
		return "Print"
	case ModeRawBT:
		return "RawBT"
	default:
		return ""
	}
}
