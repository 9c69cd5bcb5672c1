package query

// ResolveDFC looks up the implied back-face query text for a front query
// in a double-faced-card table. Lookup is exact-match on normalized text;
// there is no fuzzy matching here. The complexity lives at the call site:
// the table is only consulted when the line gave no explicit back.
func ResolveDFC(frontText string, table map[string]string) (string, bool) {
	if table == nil {
		return "", false
	}
	back, ok := table[frontText]
	return back, ok
}
