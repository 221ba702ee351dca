package console

// MaxTokens bounds the tokenizer loop so pathological input always terminates.
const MaxTokens = 10000

// Tokenize splits line into argument tokens.
//
// Tokens are separated by runs of spaces and tabs. A double quote that is not
// preceded by a backslash opens a quoted token which runs to the next
// unescaped double quote, or to the end of the line if none follows. The
// delimiting quotes are dropped; backslashes are kept verbatim.
//
// Postcondition: Returns at most MaxTokens tokens; empty input yields none.
func Tokenize(line string) []string {
	var tokens []string
	pos := 0
	for n := 0; pos < len(line) && n < MaxTokens; n++ {
		pos = skipBlank(line, pos)
		if pos == len(line) {
			break
		}

		var tok string
		if line[pos] == '"' && (pos == 0 || line[pos-1] != '\\') {
			tok, pos = scanQuoted(line, pos)
		} else {
			tok, pos = scanBare(line, pos)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func skipBlank(line string, pos int) int {
	for pos < len(line) && isBlank(line[pos]) {
		pos++
	}
	return pos
}

// scanQuoted reads the quoted token whose opening quote is at pos.
func scanQuoted(line string, pos int) (string, int) {
	pos++
	start := pos
	for ; pos < len(line); pos++ {
		if line[pos] == '"' && line[pos-1] != '\\' {
			return line[start:pos], pos + 1
		}
	}
	return line[start:], pos
}

// scanBare reads a token up to the next space or tab.
func scanBare(line string, pos int) (string, int) {
	start := pos
	for pos < len(line) && !isBlank(line[pos]) {
		pos++
	}
	return line[start:pos], pos
}
