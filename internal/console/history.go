package console

// DefaultHistorySize is the ring capacity used when none is configured.
const DefaultHistorySize = 50

// History is a fixed-capacity ring of submitted command lines with a recall
// cursor for stepping backwards and forwards.
//
// next counts every line ever appended; cursor is the recall position and
// never exceeds next. cursor == next means the operator is on the live line.
// One slot is reserved for the live line, so capacity-1 entries are
// recallable.
type History struct {
	lines  []string
	next   int
	cursor int
}

// NewHistory creates an empty History.
//
// Precondition: capacity should be >= 2; smaller values use DefaultHistorySize.
// Postcondition: Returns a History positioned on the live line.
func NewHistory(capacity int) *History {
	if capacity < 2 {
		capacity = DefaultHistorySize
	}
	return &History{lines: make([]string, capacity)}
}

// Cap returns the ring capacity.
func (h *History) Cap() int {
	return len(h.lines)
}

func (h *History) slot(i int) int {
	return i % len(h.lines)
}

// Append records line and returns the cursor to the live line.
//
// Postcondition: next is incremented and cursor == next.
func (h *History) Append(line string) {
	h.lines[h.slot(h.next)] = line
	h.next++
	h.cursor = h.next
}

// Previous steps the cursor one entry back.
//
// When stepping off the live line, current is stashed in the live slot so
// that Next can return to it.
//
// Postcondition: Returns (entry, true), or ("", false) with the cursor
// unchanged when no older retained entry exists.
func (h *History) Previous(current string) (string, bool) {
	if h.cursor == 0 || h.next-h.cursor >= len(h.lines)-1 {
		return "", false
	}
	if h.cursor == h.next {
		h.lines[h.slot(h.cursor)] = current
	}
	h.cursor--
	return h.lines[h.slot(h.cursor)], true
}

// Next steps the cursor one entry forward, towards the live line.
//
// Postcondition: Returns (entry, true), or ("", false) when already live.
func (h *History) Next() (string, bool) {
	if h.cursor == h.next {
		return "", false
	}
	h.cursor++
	return h.lines[h.slot(h.cursor)], true
}

// Position returns the write count and the recall cursor.
func (h *History) Position() (write, recall int) {
	return h.next, h.cursor
}

// Entries returns the recallable lines, oldest first.
func (h *History) Entries() []string {
	n := min(h.next, len(h.lines)-1)
	out := make([]string, 0, n)
	for i := h.next - n; i < h.next; i++ {
		out = append(out, h.lines[h.slot(i)])
	}
	return out
}

// Reset discards every entry.
func (h *History) Reset() {
	clear(h.lines)
	h.next = 0
	h.cursor = 0
}
