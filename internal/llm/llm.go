package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/llm/prompts"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

// ErrEmptyPath is returned when the model proposes no usable modules.
var ErrEmptyPath = errors.New("generated path has no modules")

// pathResponse is the JSON object the model is asked to produce.
type pathResponse struct {
	Reasoning string `json:"reasoning"`
	Modules   []struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		EstimatedTime int      `json:"estimatedTime"`
		Skills        []string `json:"skills"`
		Prerequisites []string `json:"prerequisites"`
		Content       []struct {
			Type     string `json:"type"`
			Title    string `json:"title"`
			URL      string `json:"url"`
			Duration int    `json:"duration"`
		} `json:"content"`
	} `json:"modules"`
}

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api     *openai.Client
	model   string
	variant prompts.PathVariant
	now     func() time.Time
}

// New creates a new LLM client.
func New(baseURL, apiKey, modelName, variant string) (*Client, error) {
	if !prompts.IsValidVariant(variant) {
		return nil, fmt.Errorf("invalid path variant %q", variant)
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:     openai.NewClientWithConfig(config),
		model:   modelName,
		variant: prompts.PathVariant(variant),
		now:     time.Now,
	}, nil
}

// Ping checks that the endpoint answers a model listing.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// GeneratePath asks the model for a learning path for user. last is the most
// recently completed assessment, or nil.
func (c *Client) GeneratePath(ctx context.Context, user model.User, last *model.Assessment) (*model.LearningPath, error) {
	systemPrompt, err := prompts.BuildPathPrompt(c.variant, user, last)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Generate the learning path."},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "raw", raw)

	var parsed pathResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w (raw: %s)", err, raw)
	}
	return c.toPath(user.ID, parsed)
}

func (c *Client) toPath(userID string, parsed pathResponse) (*model.LearningPath, error) {
	path := &model.LearningPath{
		ID:          uuid.NewString(),
		UserID:      userID,
		Modules:     []model.LearningModule{},
		GeneratedAt: c.now().UTC(),
		Reasoning:   strings.TrimSpace(parsed.Reasoning),
	}

	for _, m := range parsed.Modules {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			continue
		}
		mod := model.LearningModule{
			ID:            uuid.NewString(),
			Title:         title,
			Description:   strings.TrimSpace(m.Description),
			EstimatedTime: max(m.EstimatedTime, 0),
			Status:        model.ModuleNotStarted,
			Skills:        nonNil(m.Skills),
			Prerequisites: nonNil(m.Prerequisites),
			Content:       []model.ModuleContent{},
		}
		for _, ct := range m.Content {
			mod.Content = append(mod.Content, model.ModuleContent{
				Type:     contentType(ct.Type),
				Title:    strings.TrimSpace(ct.Title),
				URL:      ct.URL,
				Duration: max(ct.Duration, 0),
			})
		}
		path.EstimatedTime += mod.EstimatedTime
		path.Modules = append(path.Modules, mod)
	}

	if len(path.Modules) == 0 {
		return nil, ErrEmptyPath
	}
	return path, nil
}

// contentType maps the model's label onto a known type, defaulting to article.
func contentType(s string) model.ContentType {
	switch ct := model.ContentType(strings.ToLower(strings.TrimSpace(s))); ct {
	case model.ContentVideo, model.ContentArticle, model.ContentExercise, model.ContentQuiz:
		return ct
	default:
		return model.ContentArticle
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
