package handlers

import "github.com/justinharry4/qz-trivia-api/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// ValidationErrorResponse lists every violation of a submission together,
// keyed by field.
type ValidationErrorResponse struct {
	Error  string            `json:"error" example:"validation failed"`
	Errors map[string]string `json:"errors"`
}

// Type aliases so swag can resolve models in annotations.
type Quiz = models.Quiz
