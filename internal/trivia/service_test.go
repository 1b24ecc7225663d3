package trivia

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/memstore"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

type memoryCategoryCache struct {
	categories CategoryMap
	gets, sets int
	getErr     error
}

func (c *memoryCategoryCache) Get(context.Context) (CategoryMap, error) {
	c.gets++
	return c.categories, c.getErr
}

func (c *memoryCategoryCache) Set(_ context.Context, categories CategoryMap) error {
	c.sets++
	c.categories = categories
	return nil
}

func seededStore() *memstore.Store {
	store := memstore.New()
	store.AddCategory(1, "Science")
	store.AddCategory(2, "Art")
	store.AddCategory(3, "Geography")
	store.AddQuestion("What is the heaviest organ in the human body?", "The Liver", 1, 4)
	store.AddQuestion("Who discovered penicillin?", "Alexander Fleming", 1, 3)
	store.AddQuestion("Which Dutch graphic artist drew impossible staircases?", "Escher", 2, 1)
	store.AddQuestion("What is the capital of Ghana?", "Accra", 3, 2)
	return store
}

func newTestService(store *memstore.Store, opts ServiceOptions) *Service {
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		opts,
		zerolog.Nop(),
	)
}

func TestServiceCategories(t *testing.T) {
	svc := newTestService(seededStore(), ServiceOptions{})

	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CategoryMap{1: "Science", 2: "Art", 3: "Geography"}, got)
}

func TestServiceCategoriesUsesCache(t *testing.T) {
	store := seededStore()
	cache := &memoryCategoryCache{}
	svc := newTestService(store, ServiceOptions{Cache: cache})

	_, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	store.FailWith(errors.New("db down"))
	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Art", got[2])
	assert.Equal(t, 1, cache.sets)
}

func TestServiceCategoriesIgnoresCacheErrors(t *testing.T) {
	cache := &memoryCategoryCache{getErr: errors.New("redis down")}
	svc := newTestService(seededStore(), ServiceOptions{Cache: cache})

	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestServiceListQuestions(t *testing.T) {
	store := seededStore()
	for i := 0; i < 10; i++ {
		store.AddQuestion("Filler question", "x", 1, 1)
	}
	svc := newTestService(store, ServiceOptions{})

	page, err := svc.ListQuestions(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 4)
	assert.Equal(t, 14, page.Total)
	assert.Equal(t, 11, page.Questions[0].ID)
	assert.Len(t, page.Categories, 3)

	page, err = svc.ListQuestions(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Equal(t, 14, page.Total)
}

func TestServiceListQuestionsStorageFault(t *testing.T) {
	store := seededStore()
	store.FailWith(errors.New("connection reset"))
	svc := newTestService(store, ServiceOptions{})

	_, err := svc.ListQuestions(context.Background(), 1)
	var storage *StorageError
	assert.ErrorAs(t, err, &storage)
}

func TestServiceDeleteQuestion(t *testing.T) {
	svc := newTestService(seededStore(), ServiceOptions{})

	res, err := svc.DeleteQuestion(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, 3, res.Total)
	for _, q := range res.Questions {
		assert.NotEqual(t, 2, q.ID)
	}

	_, err = svc.DeleteQuestion(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceCreateQuestion(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	svc := newTestService(seededStore(), ServiceOptions{Metrics: metrics})

	res, err := svc.CreateQuestion(context.Background(), NewQuestion{
		Question: "Who painted the Mona Lisa?", Answer: "Leonardo da Vinci", Category: 2, Difficulty: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.ID)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.questionWrites.WithLabelValues("create")))
}

func TestServiceSearchQuestions(t *testing.T) {
	svc := newTestService(seededStore(), ServiceOptions{})

	found, err := svc.SearchQuestions(context.Background(), "PENICILLIN", 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Alexander Fleming", found[0].Answer)

	found, err = svc.SearchQuestions(context.Background(), "zebra", 1)
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = svc.SearchQuestions(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Len(t, found, 4)
}

func TestServiceQuestionsByCategory(t *testing.T) {
	svc := newTestService(seededStore(), ServiceOptions{})

	res, err := svc.QuestionsByCategory(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Category{ID: 1, Type: "Science"}, res.Category)
	assert.Len(t, res.Questions, 2)
	assert.Len(t, res.Categories, 3)

	_, err = svc.QuestionsByCategory(context.Background(), 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceQuestionsByCategoryEmpty(t *testing.T) {
	store := memstore.New()
	store.AddCategory(1, "Science")
	store.AddCategory(2, "Art")
	store.AddQuestion("Q", "A", 1, 1)
	svc := newTestService(store, ServiceOptions{})

	res, err := svc.QuestionsByCategory(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.NotNil(t, res.Questions)
	assert.Empty(t, res.Questions)
}

func TestServiceNextQuizQuestion(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	svc := newTestService(seededStore(), ServiceOptions{Metrics: metrics, Intn: firstIndex})

	q, err := svc.NextQuizQuestion(context.Background(), QuizRequest{PreviousQuestions: []int{1}, CategoryID: 1})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 2, q.ID)

	q, err = svc.NextQuizQuestion(context.Background(), QuizRequest{PreviousQuestions: []int{1, 2}, CategoryID: 1})
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = svc.NextQuizQuestion(context.Background(), QuizRequest{PreviousQuestions: []int{1, 2, 3}})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 4, q.ID)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.quizDraws.WithLabelValues("question")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.quizDraws.WithLabelValues("exhausted")))
}
