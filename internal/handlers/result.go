package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/justinharry4/qz-trivia-api/internal/services"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	scoring *services.ScoringService
}

func NewResultHandler(scoring *services.ScoringService) *ResultHandler {
	return &ResultHandler{scoring: scoring}
}

type AnsweredQuestionRequest struct {
	QuestionID     uint `json:"question_id"`
	OptionID       uint `json:"option_id"`
	QuestionNumber int  `json:"question_number"`
}

type CreateResultRequest struct {
	AnsweredQuestions []AnsweredQuestionRequest `json:"answered_questions"`
	Duration          *int64                    `json:"duration"`
}

// CreateResult godoc
// @Summary      Submit answers for a quiz
// @Description  Creates an immutable attempt record. Validation failures
// @Description  report every violation together, keyed by field.
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body CreateResultRequest true "Submitted answers"
// @Success      201 {object} services.ResultView
// @Failure      400 {object} ValidationErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/results [post]
func (h *ResultHandler) CreateResult(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	var req CreateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answers := make([]services.AnswerInput, 0, len(req.AnsweredQuestions))
	for _, entry := range req.AnsweredQuestions {
		answers = append(answers, services.AnswerInput{
			QuestionID:     entry.QuestionID,
			OptionID:       entry.OptionID,
			QuestionNumber: entry.QuestionNumber,
		})
	}

	view, err := h.scoring.Submit(uint(quizID), answers, req.Duration)
	if err != nil {
		var verrs services.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			c.JSON(http.StatusBadRequest, ValidationErrorResponse{
				Error:  "validation failed",
				Errors: verrs,
			})
		case errors.Is(err, services.ErrQuizNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, view)
}

// GetResult godoc
// @Summary      Get an attempt result
// @Description  Returns the result with its answers in attempt order and
// @Description  the derived accuracy statistics.
// @Tags         results
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        resultId path int true "Result ID"
// @Success      200 {object} services.ResultView
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/results/{resultId} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}
	resultID, err := strconv.ParseUint(c.Param("resultId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid result id"})
		return
	}

	view, err := h.scoring.Retrieve(uint(quizID), uint(resultID))
	if err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}
