package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gitlab.com/yelinaung/expense-api/internal/logger"
	"gitlab.com/yelinaung/expense-api/internal/models"
	"google.golang.org/genai"
)

// MaxPromptDescriptionLength caps the description embedded in a prompt.
const MaxPromptDescriptionLength = 200

const (
	maxReasoningLength = 500
	suggestTimeout     = 10 * time.Second
)

// CategorySuggestion is a suggested category for an expense description.
type CategorySuggestion struct {
	Category   models.Category `json:"category"`
	Confidence float64         `json:"confidence"`
	Reasoning  string          `json:"reasoning"`
}

// SuggestCategory asks Gemini to pick the best category for description
// from categories. The answer is matched back to the canonical spelling.
func (c *Client) SuggestCategory(ctx context.Context, description string, categories []models.Category) (*CategorySuggestion, error) {
	descHash := hashDescription(description)
	logger.Log.Debug().
		Str("description_hash", descHash).
		Int("category_count", len(categories)).
		Msg("SuggestCategory called")

	if c == nil || c.generator == nil {
		return nil, ErrNotConfigured
	}

	if strings.TrimSpace(description) == "" {
		return nil, models.NewValidationError("description", "is required")
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories available")
	}

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = string(cat)
	}

	prompt := buildCategorySuggestionPrompt(sanitizeDescription(description), names)

	timeoutCtx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := c.generator.GenerateContent(timeoutCtx, ModelName, contents, suggestionConfig(names))
	if err != nil {
		logger.Log.Error().Err(err).
			Str("description_hash", descHash).
			Msg("SuggestCategory: Gemini API call failed")
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("no response from Gemini")
	}

	fullText := resp.Text()
	if fullText == "" {
		logger.Log.Warn().
			Str("description_hash", descHash).
			Msg("SuggestCategory: no text content in Gemini response")
		return nil, fmt.Errorf("no text content in response")
	}

	jsonText := extractJSON(fullText)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var raw struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	category, ok := matchCategory(raw.Category, categories)
	if !ok {
		logger.Log.Warn().
			Str("description_hash", descHash).
			Str("suggested_category", raw.Category).
			Msg("SuggestCategory: suggested category not in available list")
		return nil, fmt.Errorf("suggested category '%s' not in available categories", raw.Category)
	}

	if raw.Confidence < 0.0 || raw.Confidence > 1.0 {
		return nil, fmt.Errorf("confidence out of range: %f", raw.Confidence)
	}

	logger.Log.Debug().
		Str("description_hash", descHash).
		Str("category", string(category)).
		Float64("confidence", raw.Confidence).
		Msg("SuggestCategory: matched category")

	return &CategorySuggestion{
		Category:   category,
		Confidence: raw.Confidence,
		Reasoning:  sanitizeReasoning(raw.Reasoning),
	}, nil
}

func suggestionConfig(names []string) *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(500),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: "You are a JSON API. You MUST respond with ONLY valid JSON, no preamble or explanation. Output a single JSON object."},
			},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category": {
					Type:        genai.TypeString,
					Enum:        names,
					Description: "The most appropriate category from the provided list",
				},
				"confidence": {
					Type:        genai.TypeNumber,
					Description: "Confidence score between 0 and 1",
				},
				"reasoning": {
					Type:        genai.TypeString,
					Description: "Brief explanation for the categorization",
				},
			},
			Required: []string{"category", "confidence", "reasoning"},
		},
	}
}

func matchCategory(s string, categories []models.Category) (models.Category, bool) {
	s = strings.TrimSpace(s)
	for _, cat := range categories {
		if strings.EqualFold(string(cat), s) {
			return cat, true
		}
	}
	return "", false
}

func buildCategorySuggestionPrompt(description string, categories []string) string {
	return fmt.Sprintf(`Categorize this personal expense: "%s"

Available categories:
- %s

Rules:
- Choose the MOST appropriate category from the list
- "Food" covers groceries, restaurants and coffee
- "Transport" for taxi, ride-hailing, fuel, bus and train fares
- "Bills" for recurring invoices; "Utilities" for power, water, gas and internet
- "Rent" only for housing rent; use "Others" when nothing fits
- Higher confidence (0.8-1.0) for obvious categories, lower (0.5-0.7) for ambiguous ones

Return JSON only:
{"category": "exact category name", "confidence": 0.0-1.0, "reasoning": "brief explanation"}`,
		description, strings.Join(categories, "\n- "))
}

// extractJSON returns the outermost {...} span of text, or "" if none.
// Gemini occasionally adds a preamble even in JSON mode.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	end := strings.LastIndex(text, "}")
	if end == -1 || end <= start {
		return ""
	}

	return text[start : end+1]
}

// SanitizeForPrompt strips characters that could break prompt structure,
// collapses whitespace and truncates to maxRunes.
func SanitizeForPrompt(input string, maxRunes int) string {
	input = strings.ReplaceAll(input, `"`, `'`)
	input = strings.ReplaceAll(input, "`", "'")
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.Join(strings.Fields(input), " ")

	if runes := []rune(input); len(runes) > maxRunes {
		input = strings.TrimSpace(string(runes[:maxRunes]))
	}

	return input
}

func sanitizeDescription(description string) string {
	return SanitizeForPrompt(description, MaxPromptDescriptionLength)
}

func sanitizeReasoning(reasoning string) string {
	reasoning = strings.Join(strings.Fields(reasoning), " ")
	if runes := []rune(reasoning); len(runes) > maxReasoningLength {
		reasoning = strings.TrimSpace(string(runes[:maxReasoningLength]))
	}
	return reasoning
}

// hashDescription creates a short SHA256 digest of the description for logs.
func hashDescription(description string) string {
	hash := sha256.Sum256([]byte(description))
	return hex.EncodeToString(hash[:8])
}
