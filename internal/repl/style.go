package repl

// ANSI escape codes used for operator-facing output.
const (
	reset  = "\033[0m"
	dim    = "\033[2m"
	red    = "\033[31m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// Cursor keys as a cooked-mode terminal delivers them inside a line.
const (
	keyUp   = "\033[A"
	keyDown = "\033[B"
)

// styler applies ANSI styles only when output goes to a terminal.
type styler struct {
	enabled bool
}

// paint wraps text with code and a reset suffix when styling is enabled.
//
// Postcondition: Returns text unchanged when styling is disabled.
func (s styler) paint(code, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return code + text + reset
}

// stripEscapes removes CSI escape sequences (ESC '[' params final-byte) from s.
//
// Postcondition: Returns s without any ESC '[' ... sequence; a truncated
// sequence at the end is dropped.
func stripEscapes(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			// Skip past the final byte in 0x40-0x7E
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			i = j + 1
			continue
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}
