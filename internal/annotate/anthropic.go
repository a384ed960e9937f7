package annotate

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// implements Annotator using Anthropic Claude
type AnthropicAnnotator struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicAnnotator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*AnthropicAnnotator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicAnnotator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (a *AnthropicAnnotator) Annotate(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	return runSequential(ctx, items, a.options.BatchSize, a.annotateBatch)
}

func (a *AnthropicAnnotator) AnnotateWithConcurrency(
	ctx context.Context,
	items []Item,
	concurrency int,
) ([]Result, error) {
	return runConcurrent(
		ctx,
		items,
		a.options.BatchSize,
		concurrency,
		a.annotateBatch,
	)
}

func (a *AnthropicAnnotator) annotateBatch(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	prompt := BuildPrompt(a.options, items)

	message, err := a.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: 4096,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(prompt),
				),
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("annotation failed: %w", err)
	}

	if message == nil || len(message.Content) == 0 {
		return nil, fmt.Errorf("empty response from Anthropic")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Anthropic response")
	}

	return parseResponseText(responseText, len(items))
}
