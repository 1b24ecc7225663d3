package trivia

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// Question is the formatted record delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a labeled grouping of questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryMap maps category id to label. JSON renders the ids as object keys.
type CategoryMap map[int]string

// NewQuestion carries the validated fields of a create request.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// QuizRequest asks for a question not in PreviousQuestions. A zero
// CategoryID draws from every category.
type QuizRequest struct {
	PreviousQuestions []int
	CategoryID        int
}

// QuestionPage is one page of the full question list.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Categories CategoryMap
}

// DeleteResult reports a deletion and the first requested page of what remains.
type DeleteResult struct {
	Deleted   int
	Questions []Question
	Total     int
}

// CreateResult reports the id of an inserted question.
type CreateResult struct {
	ID    int
	Total int
}

// CategoryQuestions is one page of a category's questions.
type CategoryQuestions struct {
	Category   Category
	Questions  []Question
	Categories CategoryMap
}
