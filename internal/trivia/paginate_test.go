package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeQuestions(n int) []Question {
	out := make([]Question, n)
	for i := range out {
		out[i] = Question{ID: i + 1, Question: "q", Answer: "a", Category: 1, Difficulty: 1}
	}
	return out
}

func TestPaginate(t *testing.T) {
	records := makeQuestions(23)

	tests := []struct {
		name    string
		page    int
		wantLen int
		firstID int
	}{
		{name: "first page", page: 1, wantLen: 10, firstID: 1},
		{name: "middle page", page: 2, wantLen: 10, firstID: 11},
		{name: "partial last page", page: 3, wantLen: 3, firstID: 21},
		{name: "past the end", page: 4, wantLen: 0},
		{name: "zero", page: 0, wantLen: 0},
		{name: "negative", page: -2, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(records, tt.page)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.firstID, got[0].ID)
			}
		})
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	got := Paginate(nil, 1)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	records := makeQuestions(5)
	got := Paginate(records, 1)
	got[0].Question = "changed"
	assert.Equal(t, "q", records[0].Question)
}

func TestPageFromQuery(t *testing.T) {
	assert.Equal(t, 1, PageFromQuery(""))
	assert.Equal(t, 1, PageFromQuery("abc"))
	assert.Equal(t, 3, PageFromQuery("3"))
	assert.Equal(t, -1, PageFromQuery("-1"))
}
