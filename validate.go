package scrapegraph

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Request-model validation helpers shared across operations. Rules mirror
// what the API enforces server side so bad input never reaches the wire.

func validateWebsiteURL(field, u string) error {
	if strings.TrimSpace(u) == "" {
		return validationError("%s cannot be empty", field)
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return validationError("%s must start with http:// or https://", field)
	}
	return nil
}

func validatePrompt(field, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return validationError("%s cannot be empty", field)
	}
	for _, r := range prompt {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return nil
		}
	}
	return validationError("%s must contain a meaningful prompt", field)
}

func validateRequestID(id string) error {
	if id == "" {
		return validationError("request ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return validationError("request ID must be a valid UUID: %q", id)
	}
	return nil
}
