package deck

// ToggleDebounce detects the rising edge of a held gesture so a toggle fires
// once per assertion, never while held.
type ToggleDebounce struct {
	prev bool
}

// Rising consumes this frame's detection state and reports whether it is a
// false→true transition.
func (t *ToggleDebounce) Rising(detected bool) bool {
	fired := detected && !t.prev
	t.prev = detected
	return fired
}
