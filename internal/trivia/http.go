package trivia

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

type categoriesResponse struct {
	Success    bool        `json:"success"`
	Categories CategoryMap `json:"categories"`
}

type questionsResponse struct {
	Success        bool        `json:"success"`
	Questions      []Question  `json:"questions"`
	TotalQuestions int         `json:"total_questions"`
	Categories     CategoryMap `json:"categories"`
}

type deleteResponse struct {
	Success        bool       `json:"success"`
	Deleted        int        `json:"deleted"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type createResponse struct {
	Success        bool `json:"success"`
	Created        int  `json:"created"`
	TotalQuestions int  `json:"total_questions"`
}

type searchResponse struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions,omitempty"`
	TotalQuestions int        `json:"total_questions"`
}

type categoryQuestionsResponse struct {
	Success        bool        `json:"success"`
	Questions      []Question  `json:"questions"`
	TotalQuestions int         `json:"total_questions"`
	Categories     CategoryMap `json:"categories"`
	CategoryNow    int         `json:"category_now"`
}

type quizResponse struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question"`
}

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the trivia routes on r.
func (h *HTTPHandler) Register(r gin.IRoutes) {
	r.GET("/categories", h.listCategories)
	r.GET("/categories/:id/questions", h.questionsByCategory)
	r.GET("/questions", h.listQuestions)
	r.POST("/questions", h.createQuestion)
	r.POST("/questions/search", h.searchQuestions)
	r.DELETE("/questions/:id", h.deleteQuestion)
	r.POST("/quizzes", h.nextQuizQuestion)
}

func (h *HTTPHandler) listCategories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

func (h *HTTPHandler) listQuestions(c *gin.Context) {
	page, err := h.svc.ListQuestions(c.Request.Context(), PageFromQuery(c.Query("page")))
	if err != nil {
		h.fail(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		Categories:     page.Categories,
	})
}

func (h *HTTPHandler) deleteQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.svc.DeleteQuestion(c.Request.Context(), id, PageFromQuery(c.Query("page")))
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, deleteResponse{
		Success:        true,
		Deleted:        res.Deleted,
		Questions:      res.Questions,
		TotalQuestions: res.Total,
	})
}

func (h *HTTPHandler) createQuestion(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, ErrMalformedBody, http.StatusUnprocessableEntity)
		return
	}
	in, err := ParseNewQuestion(body)
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	res, err := h.svc.CreateQuestion(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, createResponse{Success: true, Created: res.ID, TotalQuestions: res.Total})
}

func (h *HTTPHandler) searchQuestions(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, ErrMalformedBody, http.StatusUnprocessableEntity)
		return
	}
	term, err := ParseSearchTerm(body)
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	found, err := h.svc.SearchQuestions(c.Request.Context(), term, PageFromQuery(c.Query("page")))
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	if len(found) == 0 {
		c.JSON(http.StatusOK, searchResponse{Success: false, TotalQuestions: 0})
		return
	}
	c.JSON(http.StatusOK, searchResponse{Success: true, Questions: found, TotalQuestions: len(found)})
}

func (h *HTTPHandler) questionsByCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.svc.QuestionsByCategory(c.Request.Context(), id, PageFromQuery(c.Query("page")))
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, categoryQuestionsResponse{
		Success:        true,
		Questions:      res.Questions,
		TotalQuestions: len(res.Questions),
		Categories:     res.Categories,
		CategoryNow:    res.Category.ID,
	})
}

func (h *HTTPHandler) nextQuizQuestion(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, ErrMalformedBody, http.StatusUnprocessableEntity)
		return
	}
	req, err := ParseQuizRequest(body)
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	q, err := h.svc.NextQuizQuestion(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, quizResponse{Success: true, Question: q})
}

// pathID parses the :id segment. Ids that are not non-negative int32 values
// cannot name a row, so they answer 404 like an unmatched route.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 31)
	if err != nil {
		httperrors.Abort(c, http.StatusNotFound)
		return 0, false
	}
	return int(id), true
}

// fail maps a trivia error onto the envelope. faultStatus is what a storage
// failure reports on this endpoint.
func (h *HTTPHandler) fail(c *gin.Context, err error, faultStatus int) {
	var (
		missing *MissingFieldError
		invalid *InvalidFieldError
		storage *StorageError
	)
	log := logging.FromContext(c.Request.Context(), h.logger)
	switch {
	case errors.Is(err, ErrMalformedBody), errors.As(err, &missing):
		httperrors.Abort(c, http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		httperrors.Abort(c, http.StatusNotFound)
	case errors.As(err, &invalid):
		httperrors.Abort(c, http.StatusUnprocessableEntity)
	case errors.As(err, &storage):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("storage failure")
		httperrors.Abort(c, faultStatus)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected failure")
		httperrors.Abort(c, http.StatusInternalServerError)
	}
}
