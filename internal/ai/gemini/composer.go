package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/familiarcat/candid-sub002/internal/ai"
	"github.com/familiarcat/candid-sub002/internal/util"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Composer drafts introduction messages with Gemini.
type Composer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewComposer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Composer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Composer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (c *Composer) Compose(ctx context.Context, req *ai.IntroRequest) (*ai.Intro, error) {
	if req == nil || req.Seeker == nil || req.Authority == nil {
		return nil, fmt.Errorf("job seeker and hiring authority are required")
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini compose request",
		zap.String("match_key", matchKey(req)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini compose response",
		zap.String("match_key", matchKey(req)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, c.maxLogLen)),
	)

	intro, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	intro.Raw = raw
	return intro, nil
}

func buildPrompt(req *ai.IntroRequest) (string, error) {
	seekerJSON, err := json.MarshalIndent(req.Seeker, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal job seeker payload: %w", err)
	}

	authorityJSON, err := json.MarshalIndent(req.Authority, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal authority payload: %w", err)
	}

	companyJSON, err := json.MarshalIndent(req.Company, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal company payload: %w", err)
	}

	matchJSON, err := json.MarshalIndent(req.Match, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal match payload: %w", err)
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job seeker:\n{{JOB_SEEKER_JSON}}\n\nHiring authority:\n{{AUTHORITY_JSON}}\n\nCompany:\n{{COMPANY_JSON}}\n\nMatch:\n{{MATCH_JSON}}\n\nJSON Response:"
	}

	prompt := strings.ReplaceAll(template, "{{JOB_SEEKER_JSON}}", string(seekerJSON))
	prompt = strings.ReplaceAll(prompt, "{{AUTHORITY_JSON}}", string(authorityJSON))
	prompt = strings.ReplaceAll(prompt, "{{COMPANY_JSON}}", string(companyJSON))
	prompt = strings.ReplaceAll(prompt, "{{MATCH_JSON}}", string(matchJSON))

	return prompt, nil
}

func matchKey(req *ai.IntroRequest) string {
	if req.Match != nil && req.Match.Key != "" {
		return req.Match.Key
	}
	return fmt.Sprintf("%s:%s", req.Seeker.Key, req.Authority.Key)
}

func parseResponse(raw string) (*ai.Intro, error) {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	intro := &ai.Intro{
		Subject: coerceString(data["subject"]),
		Message: coerceString(data["message"]),
	}

	if intro.Message == "" {
		return nil, fmt.Errorf("gemini response has no message")
	}

	return intro, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
