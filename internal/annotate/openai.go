package annotate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Annotator using OpenAI Chat Completions
type OpenAIAnnotator struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAIAnnotator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAIAnnotator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "gpt-5-mini"
	}

	return &OpenAIAnnotator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (a *OpenAIAnnotator) Annotate(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	return runSequential(ctx, items, a.options.BatchSize, a.annotateBatch)
}

func (a *OpenAIAnnotator) AnnotateWithConcurrency(
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

func (a *OpenAIAnnotator) annotateBatch(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	prompt := BuildPrompt(a.options, items)

	completion, err := a.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: a.model,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("annotation failed: %w", err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	responseText := completion.Choices[0].Message.Content
	if responseText == "" {
		return nil, fmt.Errorf("no text in OpenAI response")
	}

	return parseResponseText(responseText, len(items))
}
