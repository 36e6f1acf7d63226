package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/justinharry4/qz-trivia-api/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	sampler *services.SamplerService
}

func NewQuestionHandler(sampler *services.SamplerService) *QuestionHandler {
	return &QuestionHandler{sampler: sampler}
}

// GetQuizQuestions godoc
// @Summary      Get a randomized question set for a quiz
// @Description  Draws questions_per_attempt questions at random, each with
// @Description  its options shuffled. Correct answers are never exposed.
// @Tags         questions
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {array} services.SampledQuestion
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/questions [get]
func (h *QuestionHandler) GetQuizQuestions(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	questions, err := h.sampler.SampleQuestions(uint(quizID))
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, questions)
}
