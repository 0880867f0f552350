package words

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hyerin/tinywords/internal/logger"
	"github.com/sashabaranov/go-openai"
)

const maxRetries = 1

const systemPrompt = `You are a vocabulary tutor for English learners.
Generate learning words as JSON: {"items": [{"item_type": "...", "lemma": "...", "meaning": "...", "part_of_speech": "...", "example": "...", "example_translation": "..."}]}.
item_type is one of: vocab, preposition, idiom, phrasal_verb, collocation.
meaning and example_translation are written in the learner's native language (Korean).
Every example is one short natural sentence using the lemma.`

// OpenAISupplier generates words through the OpenAI chat API.
type OpenAISupplier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAISupplier creates a supplier using the given API key and model.
func NewOpenAISupplier(apiKey, model string, timeout time.Duration) *OpenAISupplier {
	cfg := openai.DefaultConfig(apiKey)
	return &OpenAISupplier{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

type wordGenResponse struct {
	Items []GeneratedWord `json:"items"`
}

// GenerateWords calls the chat API and validates the batch. A failed
// call or invalid batch is retried once before giving up.
func (s *OpenAISupplier) GenerateWords(ctx context.Context, input GenerateInput) ([]GeneratedWord, error) {
	log := logger.FromContext(ctx).WithPrefix("words")

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		ws, err := s.callOnce(ctx, input)
		if err == nil {
			if err = ValidateWords(ws, input.Count, input.AvoidWords); err == nil {
				return ws, nil
			}
		}
		lastErr = err
		log.Warn("word generation attempt %d/%d failed: %v", attempt+1, maxRetries+1, err)
	}
	return nil, lastErr
}

func (s *OpenAISupplier) callOnce(ctx context.Context, input GenerateInput) ([]GeneratedWord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.8,
		MaxTokens:   1500,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(input)},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty completion response")
	}

	var parsed wordGenResponse
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	return parsed.Items, nil
}

func buildUserPrompt(input GenerateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d items for a %s-level learner focused on %s.\n",
		input.Count, input.Level, input.Focus)
	if len(input.KnownWords) > 0 {
		fmt.Fprintf(&b, "The learner already knows: %s.\n", strings.Join(input.KnownWords, ", "))
	}
	if len(input.AvoidWords) > 0 {
		fmt.Fprintf(&b, "Do not use any of these lemmas: %s.\n", strings.Join(input.AvoidWords, ", "))
	}
	return b.String()
}
