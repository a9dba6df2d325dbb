package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements AIClient against the Google Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiClient creates a Gemini-backed AIClient. The API key and model
// name come from configuration; an empty key is an error since the caller
// should only construct the client when the AI fallback is enabled.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// SuggestCategory asks the model to pick one of the fixed categories for
// the receipt.
func (c *GeminiClient) SuggestCategory(ctx context.Context, vendor, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Classify the following purchase receipt into a spending category.
Vendor: %s
Receipt text:
%s

Assign exactly one of the following categories:
%s

Respond in this format:
Category: [selected category name]`,
		vendor,
		text,
		strings.Join(models.AllCategories, ", "))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategoryFromResponse(responseText)
	if category == "" {
		return "", fmt.Errorf("no category in gemini response")
	}

	c.logger.WithFields(
		logging.Field{Key: logging.FieldVendor, Value: vendor},
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Debug("Gemini suggested category")

	return category, nil
}

// extractCategoryFromResponse parses the "Category: x" line of a model
// response. Falls back to the first non-empty line when the model ignored
// the requested format.
func extractCategoryFromResponse(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "Category:")))
		}
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return strings.ToLower(line)
		}
	}

	return ""
}
