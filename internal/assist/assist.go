// Package assist generates chat reply and job posting suggestions with an Ollama model.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ollama/ollama/api"
	"github.com/qri-io/jsonschema"
	"github.com/rs/zerolog/log"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
)

const (
	maxReplies = 4
	maxSkills  = 3
)

// Role is the chat participant suggestions are generated for.
type Role string

const (
	RolePoster Role = "poster"
	RoleWorker Role = "worker"
)

// ReplyRequest is the context for reply suggestions.
type ReplyRequest struct {
	JobTitle       string
	JobDescription string
	History        []model.ChatMessage
	CurrentUserID  uuid.UUID
	Role           Role
}

// JobDetails is a suggested description and skill list for a job title.
type JobDetails struct {
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// Suggester is implemented by Assistant. Handlers depend on it so the AI backend stays optional.
type Suggester interface {
	SuggestReplies(ctx context.Context, req ReplyRequest) ([]string, error)
	SuggestJobDetails(ctx context.Context, title string) (*JobDetails, error)
}

// Assistant calls the Ollama generate API and validates the model output.
type Assistant struct {
	client  *api.Client
	model   string
	timeout time.Duration

	replySchema   *jsonschema.Schema
	detailsSchema *jsonschema.Schema
}

var _ Suggester = (*Assistant)(nil)

// New creates an Assistant for the Ollama server at baseURL. httpClient may be nil.
func New(baseURL, modelName string, timeout time.Duration, httpClient *http.Client) (*Assistant, error) {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	a := &Assistant{
		client:        api.NewClient(u, httpClient),
		model:         modelName,
		timeout:       timeout,
		replySchema:   &jsonschema.Schema{},
		detailsSchema: &jsonschema.Schema{},
	}
	if err := json.Unmarshal([]byte(replySchema), a.replySchema); err != nil {
		return nil, fmt.Errorf("compile reply schema: %w", err)
	}
	if err := json.Unmarshal([]byte(detailsSchema), a.detailsSchema); err != nil {
		return nil, fmt.Errorf("compile details schema: %w", err)
	}
	return a, nil
}

// SuggestReplies returns up to four replies the current user could send next.
func (a *Assistant) SuggestReplies(ctx context.Context, req ReplyRequest) ([]string, error) {
	if req.Role != RolePoster && req.Role != RoleWorker {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, req.Role)
	}

	history := make([]string, 0, len(req.History))
	for _, m := range req.History {
		speaker := "Other User"
		if m.SenderID == req.CurrentUserID {
			speaker = "You"
		}
		history = append(history, speaker+": "+m.Content)
	}

	prompt, err := render(replyPrompt, map[string]any{
		"JobTitle":       req.JobTitle,
		"JobDescription": req.JobDescription,
		"History":        history,
		"Role":           req.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("render reply prompt: %w", err)
	}

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := a.generate(ctx, prompt, replySchema, a.replySchema, &out); err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, maxReplies)
	for _, s := range out.Suggestions {
		if s = strings.TrimSpace(s); s != "" && len(suggestions) < maxReplies {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions, nil
}

// SuggestJobDetails expands a job title into a description and one to three skills.
func (a *Assistant) SuggestJobDetails(ctx context.Context, title string) (*JobDetails, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	prompt, err := render(detailsPrompt, map[string]any{"Title": title})
	if err != nil {
		return nil, fmt.Errorf("render details prompt: %w", err)
	}

	var out JobDetails
	if err := a.generate(ctx, prompt, detailsSchema, a.detailsSchema, &out); err != nil {
		return nil, err
	}

	skills := model.NormalizeSkills(out.Skills)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	return &JobDetails{
		Description: strings.TrimSpace(out.Description),
		Skills:      skills,
	}, nil
}

// generate runs one non-streaming completion constrained to format and decodes the
// validated JSON answer into dst.
func (a *Assistant) generate(ctx context.Context, prompt, format string, schema *jsonschema.Schema, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  a.model,
		Prompt: prompt,
		Stream: &stream,
		Format: json.RawMessage(format),
	}

	var text strings.Builder
	start := time.Now()
	err := a.client.Generate(ctx, req, func(r api.GenerateResponse) error {
		text.WriteString(r.Response)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("model", a.model).Msg("ollama generate failed")
		return fmt.Errorf("%w: %v", apperr.ErrAssistUnavailable, err)
	}

	raw := []byte(strings.TrimSpace(text.String()))
	keyErrs, err := schema.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("%w: model returned invalid JSON: %v", apperr.ErrAssistUnavailable, err)
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("%w: model output does not match schema: %s", apperr.ErrAssistUnavailable, keyErrs[0].Error())
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: decode model output: %v", apperr.ErrAssistUnavailable, err)
	}

	log.Debug().
		Str("model", a.model).
		Dur("latency", time.Since(start)).
		Msg("ollama suggestion generated")
	return nil
}
