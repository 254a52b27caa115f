package server

import (
	"fmt"
	"strings"
	"sync"

	"riddle-rush/internal/db"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	maxQuestionLength  = 1000
	maxResponseLength  = 280
	maxHintLength      = 280
	maxAnswerLength    = 280
	minDurationSeconds = 30
	maxDurationSeconds = 600
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case db.DifficultyEasy, db.DifficultyAverage, db.DifficultyHard:
				return true
			}
			return false
		})
	})
}

func validateQuestion(text string) (string, error) {
	return validateText("question", text, maxQuestionLength)
}

func validateResponse(text string) (string, error) {
	return validateText("response", text, maxResponseLength)
}

func validateHint(label, text string) (string, error) {
	return validateText(label, text, maxHintLength)
}

func validateAnswer(text string) (string, error) {
	return validateText("answer", text, maxAnswerLength)
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
