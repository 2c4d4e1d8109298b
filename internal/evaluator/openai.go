package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/mbruna/mindvault/internal/logger"
	"github.com/mbruna/mindvault/internal/models"
)

// Config holds the LLM evaluator configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// OpenAIEvaluator grades answers with a chat completion against an
// OpenAI-compatible endpoint.
type OpenAIEvaluator struct {
	client *openai.Client
	cfg    Config
}

// NewOpenAI creates an OpenAI-backed evaluator.
func NewOpenAI(cfg Config) *OpenAIEvaluator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIEvaluator{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

const systemPrompt = `You grade answers to study questions. Compare the student's answer to the reference answer and respond with JSON only:
{"correct": bool, "quality": 1-4, "feedback": "one or two sentences"}
quality: 1 = wrong, 2 = partially right, 3 = right with minor gaps, 4 = fully right.`

type gradedAnswer struct {
	Correct  bool   `json:"correct"`
	Quality  int    `json:"quality"`
	Feedback string `json:"feedback"`
}

// Evaluate grades one answer, retrying transient failures with backoff.
func (e *OpenAIEvaluator) Evaluate(ctx context.Context, prompt, reference, answer string) (models.Evaluation, error) {
	log := logger.FromContext(ctx).WithPrefix("evaluator")

	user := fmt.Sprintf("Question: %s\nReference answer: %s\nStudent answer: %s", prompt, reference, answer)

	var content string
	var lastErr error
	for attempt := 0; attempt < e.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			log.Debug("retrying evaluation after %v (attempt %d)", backoff, attempt+1)
			select {
			case <-ctx.Done():
				return models.Evaluation{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		resp, err := e.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: e.cfg.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: 0,
		})
		cancel()
		if err != nil {
			lastErr = err
			log.Warn("evaluation call failed: %v", err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("empty completion response")
			continue
		}
		content = resp.Choices[0].Message.Content
		lastErr = nil
		break
	}
	if lastErr != nil {
		return models.Evaluation{}, fmt.Errorf("failed to evaluate answer: %w", lastErr)
	}

	return parseGraded(content)
}

func parseGraded(content string) (models.Evaluation, error) {
	// Models sometimes wrap JSON in a code fence.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var graded gradedAnswer
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &graded); err != nil {
		return models.Evaluation{}, fmt.Errorf("unparseable evaluation %q: %w", content, err)
	}
	if graded.Quality < 1 {
		graded.Quality = 1
	}
	if graded.Quality > 4 {
		graded.Quality = 4
	}
	return models.Evaluation{
		Correct:  graded.Correct,
		Quality:  graded.Quality,
		Feedback: graded.Feedback,
	}, nil
}
