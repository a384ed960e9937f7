package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// single caption text to annotate
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// caption text with furigana readings inserted
type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Annotator inserts base(reading) furigana syntax into Japanese caption
// text. The converter's parser consumes exactly that syntax, so annotation
// stays decoupled from rendering.
type Annotator interface {
	Annotate(ctx context.Context, items []Item) ([]Result, error)
}

// optional interface for annotators that support concurrent batch processing
type ConcurrentAnnotator interface {
	Annotator
	AnnotateWithConcurrency(
		ctx context.Context,
		items []Item,
		concurrency int,
	) ([]Result, error)
}

// annotation service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

type Options struct {
	Model     string
	Prompt    string
	BatchSize int // items per API request (default 50)
}

const DefaultBatchSize = 50

// Factory creates an Annotator for the given provider.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Annotator, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiAnnotator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAIAnnotator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicAnnotator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported annotation provider: %s", provider)
	}
}

// BuildPrompt creates the furigana annotation prompt for LLM providers.
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	sb.WriteString("Add furigana readings to the following Japanese subtitle texts.\n\n")

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString(
		"1. After every contiguous kanji sequence, insert its hiragana reading in ASCII parentheses: 漢字 becomes 漢字(かんじ).\n",
	)
	sb.WriteString(
		"2. Annotate each kanji word separately: 難しい becomes 難(むずか)しい.\n",
	)
	sb.WriteString(
		"3. Do not change, reorder, add or remove any other characters.\n",
	)
	sb.WriteString(
		"4. Keep any markup (like <font color=\"...\">) and line breaks exactly as they are.\n",
	)
	sb.WriteString("5. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("6. Each object must have 'index' and 'text' fields.\n")
	sb.WriteString(
		"7. The 'index' values must match the input indices exactly.\n",
	)
	sb.WriteString("8. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(
			fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt),
		)
	}

	sb.WriteString("Input JSON:\n")

	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)

	sb.WriteString("\n\nOutput the annotated JSON array only:")

	return sb.String()
}
