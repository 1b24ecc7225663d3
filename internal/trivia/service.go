package trivia

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// ServiceOptions carries optional collaborators. Every field may be left zero.
type ServiceOptions struct {
	Cache   CategoryCache
	Metrics *Metrics
	// Intn picks the quiz question; defaults to math/rand.Intn.
	Intn func(n int) int
}

// Service implements the trivia operations over the question and category tables.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	cache      CategoryCache
	metrics    *Metrics
	intn       func(n int) int
	logger     zerolog.Logger
}

// NewService wires the trivia operations to the question and category repositories.
func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts ServiceOptions, logger zerolog.Logger) *Service {
	intn := opts.Intn
	if intn == nil {
		intn = rand.Intn
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      opts.Cache,
		metrics:    opts.Metrics,
		intn:       intn,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories returns every category keyed by id, served from the cache when possible.
func (s *Service) Categories(ctx context.Context) (CategoryMap, error) {
	log := logging.FromContext(ctx, s.logger)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list categories", Err: err}
	}
	categories := make(CategoryMap, len(rows))
	for _, row := range rows {
		categories[int(row.ID)] = row.Type
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			log.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// ListQuestions returns one page of all questions plus the unpaginated total.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	all, err := s.allQuestions(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{
		Questions:  Paginate(all, page),
		Total:      len(all),
		Categories: categories,
	}, nil
}

// DeleteQuestion removes a question and returns the requested page of the rest.
// id must fit in an int32.
func (s *Service) DeleteQuestion(ctx context.Context, id, page int) (DeleteResult, error) {
	if _, err := s.questions.Get(ctx, int32(id)); err != nil {
		return DeleteResult{}, lookupError(fmt.Sprintf("question %d", id), "get question", err)
	}
	if err := s.questions.Delete(ctx, int32(id)); err != nil {
		return DeleteResult{}, lookupError(fmt.Sprintf("question %d", id), "delete question", err)
	}
	s.metrics.observeWrite("delete")

	remaining, err := s.allQuestions(ctx)
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{
		Deleted:   id,
		Questions: Paginate(remaining, page),
		Total:     len(remaining),
	}, nil
}

// CreateQuestion inserts a question. The category id is stored as given.
func (s *Service) CreateQuestion(ctx context.Context, in NewQuestion) (CreateResult, error) {
	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   int32(in.Category),
		Difficulty: int32(in.Difficulty),
	})
	if err != nil {
		return CreateResult{}, &StorageError{Op: "insert question", Err: err}
	}
	s.metrics.observeWrite("create")

	total, err := s.questions.Count(ctx)
	if err != nil {
		return CreateResult{}, &StorageError{Op: "count questions", Err: err}
	}
	return CreateResult{ID: int(row.ID), Total: int(total)}, nil
}

// SearchQuestions returns one page of questions whose text contains term,
// ignoring case. An empty term matches every question.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) ([]Question, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, &StorageError{Op: "search questions", Err: err}
	}
	found, err := toQuestions(rows)
	if err != nil {
		return nil, err
	}
	return Paginate(found, page), nil
}

// QuestionsByCategory returns one page of a category's questions. An
// unknown category yields ErrNotFound.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID, page int) (CategoryQuestions, error) {
	row, err := s.categories.Get(ctx, int32(categoryID))
	if err != nil {
		return CategoryQuestions{}, lookupError(fmt.Sprintf("category %d", categoryID), "get category", err)
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return CategoryQuestions{}, err
	}

	rows, err := s.questions.ListByCategory(ctx, row.ID)
	if err != nil {
		return CategoryQuestions{}, &StorageError{Op: "list questions by category", Err: err}
	}
	questions, err := toQuestions(rows)
	if err != nil {
		return CategoryQuestions{}, err
	}

	var category Category
	if err := copier.Copy(&category, &row); err != nil {
		return CategoryQuestions{}, fmt.Errorf("map category: %w", err)
	}
	return CategoryQuestions{
		Category:   category,
		Questions:  Paginate(questions, page),
		Categories: categories,
	}, nil
}

// NextQuizQuestion picks a random question the player has not seen yet, or
// returns nil when the round has exhausted the candidates.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	var (
		rows []sqlcgen.Question
		err  error
	)
	if req.CategoryID != 0 {
		rows, err = s.questions.ListByCategory(ctx, int32(req.CategoryID))
	} else {
		rows, err = s.questions.List(ctx)
	}
	if err != nil {
		return nil, &StorageError{Op: "list quiz candidates", Err: err}
	}

	candidates, err := toQuestions(rows)
	if err != nil {
		return nil, err
	}
	picked := PickUnseen(candidates, req.PreviousQuestions, s.intn)
	s.metrics.observeQuiz(picked)
	return picked, nil
}

func (s *Service) allQuestions(ctx context.Context) ([]Question, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list questions", Err: err}
	}
	return toQuestions(rows)
}

func toQuestions(rows []sqlcgen.Question) ([]Question, error) {
	out := make([]Question, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	if err := copier.Copy(&out, &rows); err != nil {
		return nil, fmt.Errorf("map questions: %w", err)
	}
	return out, nil
}

func lookupError(subject, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", subject, ErrNotFound)
	}
	return &StorageError{Op: op, Err: err}
}
