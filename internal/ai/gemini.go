// Package ai generates kindness suggestions through the Gemini API, with a
// static fallback list when no key is configured or the call fails.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

var fallbackByLanguage = map[string][]string{
	"ar": {
		"ساعد شخصًا مسنًا في حمل مشترياته البقالة",
		"تبرع بالطعام أو الملابس للأسر المحتاجة في مجتمعك",
		"اكتب رسالة شكر لشخص يقدم خدمات أساسية",
		"شارك مهاراتك أو معرفتك مجانًا مع شخص يحتاج إليها",
		"زرع شجرة أو نبات للمساعدة في حماية البيئة",
	},
	"en": {
		"Listen attentively to someone with a different perspective",
		"Share a meal with someone from another culture or background",
		"Send a handwritten note of appreciation to a peacemaker in your community",
		"Teach children about respecting different cultures and beliefs",
		"Create art that celebrates diversity and peaceful coexistence",
	},
}

// FallbackSuggestions returns the static suggestion list for a language.
// Unknown languages fall back to English.
func FallbackSuggestions(language string) []string {
	if suggestions, ok := fallbackByLanguage[language]; ok {
		return suggestions
	}
	return fallbackByLanguage["en"]
}

// SuggestActs asks the generative API for five short kindness suggestions.
// Any failure degrades to the static fallback list.
func (c *Client) SuggestActs(ctx context.Context, language string) []string {
	if c == nil || c.apiKey == "" {
		return FallbackSuggestions(language)
	}

	prompt := fmt.Sprintf(
		"Generate 5 simple acts of kindness that promote peace and harmony between people, in the language with ISO code %q. "+
			"Format as a JSON array of strings. Each act should be brief (under 15 words) and start with a verb.",
		language)

	suggestions, err := c.generateList(ctx, prompt)
	if err != nil {
		log.WithError(err).Warn("gemini suggestion call failed, using fallback")
		return FallbackSuggestions(language)
	}
	return suggestions
}

func (c *Client) generateList(ctx context.Context, prompt string) ([]string, error) {
	reqBody := GeminiRequest{
		Contents: []GeminiContent{{Parts: []GeminiPart{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	return parseSuggestionList(text)
}

// parseSuggestionList extracts the JSON string array from the model output,
// tolerating markdown code fences around it.
func parseSuggestionList(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var suggestions []string
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("unparseable suggestion list: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("empty suggestion list")
	}
	return suggestions, nil
}
