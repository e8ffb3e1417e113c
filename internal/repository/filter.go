package repository

// Filter keeps the records owned directly by accountLogin and, unless
// includeForks is set, drops forks. Ordering is preserved and the input slice
// is left untouched.
func Filter(records []Repository, accountLogin string, includeForks bool) []Repository {
	selectedRecords := make([]Repository, 0, len(records))
	for _, record := range records {
		if record.OwnerLogin != accountLogin {
			continue
		}
		if record.Fork && !includeForks {
			continue
		}
		selectedRecords = append(selectedRecords, record)
	}
	return selectedRecords
}
