package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/lshigami/analyquiz/config"
)

// geminiCallTimeout bounds every outbound generation call. A timeout is a
// recoverable failure: callers substitute their deterministic fallback.
const geminiCallTimeout = 60 * time.Second

// GeminiService is the low-level text generation client shared by the quiz
// and feedback generators.
type GeminiService interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type geminiService struct {
	model *genai.GenerativeModel
	cfg   *config.Config
}

func NewGeminiService(cfg *config.Config) (GeminiService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiService will be non-functional and generators will use fallbacks.")
		return &geminiService{cfg: cfg}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(2000)
	model.SetTopP(0.8)
	model.SetTopK(10)

	return &geminiService{model: model, cfg: cfg}, nil
}

func (s *geminiService) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, geminiCallTimeout)
	defer cancel()

	prompt := userPrompt
	if systemPrompt != "" {
		prompt = systemPrompt + "\n\n" + userPrompt
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API call failed")
		return "", fmt.Errorf("gemini api call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	text := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text, nil
}
