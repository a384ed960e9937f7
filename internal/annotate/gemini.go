package annotate

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// implements Annotator using Google Gemini
type GeminiAnnotator struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiAnnotator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiAnnotator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiAnnotator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (a *GeminiAnnotator) Annotate(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	return runSequential(ctx, items, a.options.BatchSize, a.annotateBatch)
}

func (a *GeminiAnnotator) AnnotateWithConcurrency(
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

func (a *GeminiAnnotator) annotateBatch(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	prompt := BuildPrompt(a.options, items)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("annotation failed: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				responseText += part.Text
			}
		}
		if responseText != "" {
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Gemini response")
	}

	return parseResponseText(responseText, len(items))
}
