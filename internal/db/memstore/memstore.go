// Package memstore is an in-memory implementation of the sqlc query surface.
// It backs the repository layer in tests that need real insert/delete
// behaviour without a PostgreSQL instance.
package memstore

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// Store mirrors the categories and questions tables.
type Store struct {
	mu         sync.Mutex
	categories map[int32]sqlcgen.Category
	questions  map[int32]sqlcgen.Question
	nextID     int32
	fail       error
	failOn     map[string]error
}

// New returns an empty store whose first inserted question gets id 1.
func New() *Store {
	return &Store{
		categories: map[int32]sqlcgen.Category{},
		questions:  map[int32]sqlcgen.Question{},
		nextID:     1,
		failOn:     map[string]error{},
	}
}

// AddCategory seeds a category row.
func (s *Store) AddCategory(id int32, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = sqlcgen.Category{ID: id, Type: label}
}

// AddQuestion seeds a question row and returns its assigned id.
func (s *Store) AddQuestion(question, answer string, category, difficulty int32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(sqlcgen.InsertQuestionParams{
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}).ID
}

// FailWith makes every subsequent query return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// FailOn makes only the named query method (e.g. "DeleteQuestion") return
// err. Pass nil to recover.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failOn, method)
		return
	}
	s.failOn[method] = err
}

func (s *Store) failureLocked(method string) error {
	if s.fail != nil {
		return s.fail
	}
	return s.failOn[method]
}

func (s *Store) ListCategories(_ context.Context) ([]sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failureLocked("ListCategories"); err != nil {
		return nil, err
	}
	out := make([]sqlcgen.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id int32) (sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failureLocked("GetCategory"); err != nil {
		return sqlcgen.Category{}, err
	}
	c, ok := s.categories[id]
	if !ok {
		return sqlcgen.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *Store) ListQuestions(_ context.Context) ([]sqlcgen.Question, error) {
	return s.filter("ListQuestions", func(sqlcgen.Question) bool { return true })
}

func (s *Store) ListQuestionsByCategory(_ context.Context, category int32) ([]sqlcgen.Question, error) {
	return s.filter("ListQuestionsByCategory", func(q sqlcgen.Question) bool { return q.Category == category })
}

// SearchQuestions matches like ILIKE '%' || term || '%': case-insensitive,
// with % and _ as wildcards and backslash escaping them.
func (s *Store) SearchQuestions(_ context.Context, term string) ([]sqlcgen.Question, error) {
	pattern := ilikePattern("%" + term + "%")
	return s.filter("SearchQuestions", func(q sqlcgen.Question) bool {
		return pattern.MatchString(q.Question)
	})
}

func (s *Store) GetQuestion(_ context.Context, id int32) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failureLocked("GetQuestion"); err != nil {
		return sqlcgen.Question{}, err
	}
	q, ok := s.questions[id]
	if !ok {
		return sqlcgen.Question{}, pgx.ErrNoRows
	}
	return q, nil
}

func (s *Store) InsertQuestion(_ context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failureLocked("InsertQuestion"); err != nil {
		return sqlcgen.Question{}, err
	}
	return s.insertLocked(arg), nil
}

func (s *Store) DeleteQuestion(_ context.Context, id int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failureLocked("DeleteQuestion"); err != nil {
		return 0, err
	}
	if _, ok := s.questions[id]; !ok {
		return 0, nil
	}
	delete(s.questions, id)
	return 1, nil
}

func (s *Store) CountQuestions(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failureLocked("CountQuestions"); err != nil {
		return 0, err
	}
	return int64(len(s.questions)), nil
}

func (s *Store) insertLocked(arg sqlcgen.InsertQuestionParams) sqlcgen.Question {
	q := sqlcgen.Question{
		ID:         s.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	s.questions[q.ID] = q
	s.nextID++
	return q
}

func (s *Store) filter(method string, keep func(sqlcgen.Question) bool) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failureLocked(method); err != nil {
		return nil, err
	}
	var out []sqlcgen.Question
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ilikePattern compiles a LIKE pattern into an anchored, case-insensitive regexp.
func ilikePattern(like string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?is)^`)
	escaped := false
	for _, r := range like {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(`.*`)
		case r == '_':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if escaped {
		b.WriteString(regexp.QuoteMeta(`\`))
	}
	b.WriteString(`$`)
	return regexp.MustCompile(b.String())
}
