package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/daily-planner-api/internal/constants"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoScenarios          = errors.New("AI did not generate any scenarios")
	ErrFeatureNameRequired    = errors.New("feature name is required")
)

// AIService generates test-case scenarios for a feature via OpenAI.
type AIService struct {
	client *openai.Client
}

// TestScenario is one generated test case.
type TestScenario struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	InputData   string `json:"input_data"`
	Expected    string `json:"expected"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateScenarios asks the model for test cases covering a feature and
// returns them with server-assigned IDs.
func (s *AIService) GenerateScenarios(ctx context.Context, featureName, description string) ([]TestScenario, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(featureName) == "" {
		return nil, ErrFeatureNameRequired
	}

	prompt := fmt.Sprintf(`You are a QA assistant. Generate concrete test cases for the feature below.

Feature: %s

Description:
%s

Return a JSON array of test cases in this exact shape:
[
  {
    "description": "what the test verifies",
    "input_data": "the input or preconditions",
    "expected": "the expected outcome"
  }
]

Rules:
- Cover the happy path, edge cases, and at least one failure case
- Return at most %d test cases
- Return only JSON, no explanations`, featureName, description, constants.MaxGeneratedScenarios)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var scenarios []TestScenario
	if err := json.Unmarshal([]byte(content), &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	valid := make([]TestScenario, 0, len(scenarios))
	for _, sc := range scenarios {
		if strings.TrimSpace(sc.Description) == "" {
			continue
		}
		sc.ID = uuid.NewString()
		valid = append(valid, sc)
	}
	if len(valid) == 0 {
		return nil, ErrAINoScenarios
	}
	if len(valid) > constants.MaxGeneratedScenarios {
		valid = valid[:constants.MaxGeneratedScenarios]
	}

	return valid, nil
}
