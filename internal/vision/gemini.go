package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Extractor turns a car photo into structured listing or search attributes.
type Extractor interface {
	ExtractListing(ctx context.Context, img *ImageData) (Result, error)
	ExtractSearch(ctx context.Context, img *ImageData) (Result, error)
}

// GeminiClient calls the Gemini API with an image part and a fixed prompt,
// then normalizes the reply against the requested schema.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: c, model: model}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) ExtractListing(ctx context.Context, img *ImageData) (Result, error) {
	return g.generate(ctx, img, listingPrompt, listingFields)
}

func (g *GeminiClient) ExtractSearch(ctx context.Context, img *ImageData) (Result, error) {
	return g.generate(ctx, img, searchPrompt, searchFields)
}

func (g *GeminiClient) generate(ctx context.Context, img *ImageData, prompt string, required []string) (Result, error) {
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(img.Ext, img.Bytes),
		genai.Text(prompt),
	)
	if err != nil {
		return Result{}, g.wrapModelError(err)
	}

	text := responseText(resp)
	if text == "" {
		return Result{Success: false, Error: "empty AI response"}, nil
	}
	return Normalize(text, required), nil
}

// wrapModelError adds a remediation hint when the configured model is not
// available, since the raw API error is opaque about the fix.
func (g *GeminiClient) wrapModelError(err error) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "not found") || strings.Contains(lower, "not supported") {
		return fmt.Errorf("gemini api error: %s. This usually means the chosen model (%s) is not available for your API version or doesn't support generateContent. Set GEMINI_MODEL to a supported model or call ListModels to see available models for your account", msg, g.model)
	}
	return fmt.Errorf("gemini api error: %w", err)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

var _ Extractor = (*GeminiClient)(nil)
