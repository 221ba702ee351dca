package console

// Complete extends prefix towards the registered command names it starts.
//
// Matching is case-insensitive and walks the commands in Commands order.
// The longest common prefix is folded pairwise over adjacent matches, and
// prefix is extended with the first match's text up to that length.
//
// Postcondition: With no match, returns (prefix, nil). With one match, the
// result carries a trailing space and candidates holds that name. With
// several, the result has no trailing space and candidates lists them all.
func (r *Registry) Complete(prefix string) (string, []string) {
	var matches []string
	for _, cmd := range r.Commands() {
		if hasPrefixFold(cmd.Name, prefix) {
			matches = append(matches, cmd.Name)
		}
	}
	if len(matches) == 0 {
		return prefix, nil
	}

	lcp := len(matches[0])
	for i := 0; i < len(matches)-1; i++ {
		lcp = min(lcp, commonPrefixLen(matches[i], matches[i+1]))
	}

	completed := prefix
	if lcp > len(prefix) {
		completed += matches[0][len(prefix):lcp]
	}
	if len(matches) == 1 {
		completed += " "
	}
	return completed, matches
}

// hasPrefixFold reports whether s begins with prefix, folding ASCII case
// only, as Registry.Lookup does.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && key(s[:len(prefix)]) == key(prefix)
}

// commonPrefixLen returns the length of the longest ASCII case-insensitive
// common prefix of a and b.
func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && lowerASCII(a[i]) == lowerASCII(b[i]) {
		i++
	}
	return i
}
