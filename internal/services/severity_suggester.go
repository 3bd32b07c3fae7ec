package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"claim-service/internal/ai/gemini"
	"claim-service/internal/models"
)

type SeveritySource string

const (
	SourceAI      SeveritySource = "ai"
	SourceKeyword SeveritySource = "keyword"
)

type SeveritySuggestion struct {
	Severity   models.DamageSeverity `json:"severity"`
	Confidence float64               `json:"confidence"`
	Reasoning  string                `json:"reasoning,omitempty"`
	Source     SeveritySource        `json:"source"`
}

// SeveritySuggester proposes a severity for an incident description. It uses the
// AI model when one is configured and falls back to DetermineSeverity otherwise.
type SeveritySuggester struct {
	ai AIGenerator
}

func NewSeveritySuggester(ai AIGenerator) *SeveritySuggester {
	return &SeveritySuggester{ai: ai}
}

func (s *SeveritySuggester) Suggest(ctx context.Context, damageType models.DamageType, description string, images [][]byte) SeveritySuggestion {
	fallback := SeveritySuggestion{
		Severity:   DetermineSeverity(description),
		Confidence: 0.5,
		Source:     SourceKeyword,
	}
	if s == nil || s.ai == nil || !s.ai.Available() || strings.TrimSpace(description) == "" {
		return fallback
	}

	prompt := fmt.Sprintf(gemini.SeverityPromptTemplate, damageType.Label(), description)
	resp, err := s.ai.Generate(ctx, prompt, images)
	if err != nil {
		slog.Warn("AI severity suggestion failed, using keyword heuristic", "error", err)
		return fallback
	}

	suggestion, ok := parseSeveritySuggestion(resp)
	if !ok {
		slog.Warn("AI returned an unusable severity, using keyword heuristic", "response", resp)
		return fallback
	}
	return suggestion
}

func parseSeveritySuggestion(resp map[string]any) (SeveritySuggestion, bool) {
	raw, _ := resp["severity"].(string)
	severity := models.DamageSeverity(strings.ToLower(strings.TrimSpace(raw)))
	if severity == "total" {
		severity = models.SeverityTotal
	}
	if !severity.IsValid() {
		return SeveritySuggestion{}, false
	}

	confidence, _ := resp["confidence"].(float64)
	confidence = min(max(confidence, 0), 1)
	reasoning, _ := resp["reasoning"].(string)

	return SeveritySuggestion{
		Severity:   severity,
		Confidence: confidence,
		Reasoning:  reasoning,
		Source:     SourceAI,
	}, true
}
