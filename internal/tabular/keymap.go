package tabular

// KeyMap maps a key column's value to its full row.
type KeyMap map[string]Row

// KeyMap builds a key-to-row mapping over the named column. With strict
// false a repeated key silently replaces the earlier entry (last seen
// wins); with strict true construction fails on the first duplicate with
// a DuplicateKeyError.
func (s *Source) KeyMap(column string, strict bool) (KeyMap, error) {
	if err := s.RequireColumn(column); err != nil {
		return nil, err
	}
	entries := make(KeyMap, len(s.Rows))
	for _, row := range s.Rows {
		key := row[column]
		if strict {
			if _, exists := entries[key]; exists {
				return nil, &DuplicateKeyError{Path: s.Path, Column: column, Key: key}
			}
		}
		entries[key] = row
	}
	return entries, nil
}
