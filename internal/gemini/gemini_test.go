package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

type mockGenerator struct {
	response *genai.GenerateContentResponse
	err      error

	mu       sync.Mutex
	calls    int
	lastConf *genai.GenerateContentConfig
	lastText string
}

func (m *mockGenerator) GenerateContent(
	_ context.Context,
	_ string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastConf = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		m.lastText = contents[0].Parts[0].Text
	}
	return m.response, m.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}

func categoryResponse(category string, confidence float64, reasoning string) *genai.GenerateContentResponse {
	return textResponse(fmt.Sprintf(`{"category": %q, "confidence": %.2f, "reasoning": %q}`,
		category, confidence, reasoning))
}
