package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
	"github.com/hearthloan/prequal/internal/domain/service"
)

// ClassifyIntentUseCase routes an assistant message.
type ClassifyIntentUseCase struct {
	classifier port.IntentClassifier
}

// NewClassifyIntentUseCase wires dependencies.
func NewClassifyIntentUseCase(classifier port.IntentClassifier) *ClassifyIntentUseCase {
	return &ClassifyIntentUseCase{classifier: classifier}
}

func (uc *ClassifyIntentUseCase) Execute(_ context.Context, req dto.ClassifyIntentRequest) (dto.IntentResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return dto.IntentResponse{}, fmt.Errorf("%w: message is required", model.ErrValidation)
	}

	intent := uc.classifier.Classify(req.Message)
	resp := dto.IntentResponse{Suggestions: uc.classifier.Suggestions(intent)}
	if resp.Suggestions == nil {
		resp.Suggestions = []string{}
	}
	if intent != service.IntentNone {
		s := string(intent)
		resp.Intent = &s
	}
	return resp, nil
}
