package trivia

import "strconv"

// Paginate returns the 1-based page of records. Pages outside the data,
// including pages below 1, are empty rather than an error.
func Paginate(records []Question, page int) []Question {
	out := []Question{}
	if page < 1 {
		return out
	}
	pages := (len(records) + QuestionsPerPage - 1) / QuestionsPerPage
	if page > pages {
		return out
	}
	start := (page - 1) * QuestionsPerPage
	end := min(start+QuestionsPerPage, len(records))
	return append(out, records[start:end]...)
}

// PageFromQuery parses the ?page= parameter, defaulting to 1 when it is
// missing or not an integer.
func PageFromQuery(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
