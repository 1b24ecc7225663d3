package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// createFieldOrder is the order in which missing create fields are reported.
var createFieldOrder = []string{"question", "answer", "difficulty", "category"}

// ParseNewQuestion validates a create request body. Absent fields yield a
// *MissingFieldError; present fields of the wrong type an *InvalidFieldError.
func ParseNewQuestion(body []byte) (NewQuestion, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return NewQuestion{}, err
	}
	for _, name := range createFieldOrder {
		if !present(fields, name) {
			return NewQuestion{}, &MissingFieldError{Field: name}
		}
	}

	var nq NewQuestion
	if err := json.Unmarshal(fields["question"], &nq.Question); err != nil {
		return NewQuestion{}, &InvalidFieldError{Field: "question", Err: err}
	}
	if err := json.Unmarshal(fields["answer"], &nq.Answer); err != nil {
		return NewQuestion{}, &InvalidFieldError{Field: "answer", Err: err}
	}
	if nq.Difficulty, err = decodeInt32(fields["difficulty"]); err != nil {
		return NewQuestion{}, &InvalidFieldError{Field: "difficulty", Err: err}
	}
	if nq.Category, err = decodeInt32(fields["category"]); err != nil {
		return NewQuestion{}, &InvalidFieldError{Field: "category", Err: err}
	}
	return nq, nil
}

// ParseSearchTerm extracts searchTerm. Missing or null terms match everything.
func ParseSearchTerm(body []byte) (string, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return "", err
	}
	if !present(fields, "searchTerm") {
		return "", nil
	}
	var term string
	if err := json.Unmarshal(fields["searchTerm"], &term); err != nil {
		return "", &InvalidFieldError{Field: "searchTerm", Err: err}
	}
	return term, nil
}

// ParseQuizRequest reads previous_questions and quiz_category.id. A missing
// category, or id 0, selects every category.
func ParseQuizRequest(body []byte) (QuizRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return QuizRequest{}, err
	}

	var req QuizRequest
	if present(fields, "previous_questions") {
		var ids []flexInt
		if err := json.Unmarshal(fields["previous_questions"], &ids); err != nil {
			return QuizRequest{}, &InvalidFieldError{Field: "previous_questions", Err: err}
		}
		req.PreviousQuestions = make([]int, len(ids))
		for i, id := range ids {
			req.PreviousQuestions[i] = int(id)
		}
	}

	if present(fields, "quiz_category") {
		var category struct {
			ID flexInt `json:"id"`
		}
		if err := json.Unmarshal(fields["quiz_category"], &category); err != nil {
			return QuizRequest{}, &InvalidFieldError{Field: "quiz_category", Err: err}
		}
		if category.ID < math.MinInt32 || category.ID > math.MaxInt32 {
			return QuizRequest{}, &InvalidFieldError{Field: "quiz_category", Err: errOutOfRange}
		}
		req.CategoryID = int(category.ID)
	}
	return req, nil
}

var errOutOfRange = errors.New("value out of range")

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, ErrMalformedBody
	}
	return fields, nil
}

func present(fields map[string]json.RawMessage, name string) bool {
	raw, ok := fields[name]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeInt32(raw json.RawMessage) (int, error) {
	var v flexInt
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errOutOfRange
	}
	return int(v), nil
}

// flexInt accepts a JSON integer or a string holding one; browser forms
// post select values as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expected integer, got %q", s)
	}
	*f = flexInt(n)
	return nil
}
