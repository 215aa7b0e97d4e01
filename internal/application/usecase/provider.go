// Package usecase contains application-level services.
package usecase

import "context"

// TextRequest is one prompt sent to a generative text provider.
type TextRequest struct {
	Prompt       string
	Categories   []string
	Count        int
	WebGrounding bool
}

// Citation is a grounding record returned alongside generated text.
// Citations are positionally correlated with the items in the response.
type Citation struct {
	URI   string
	Title string
}

// TextResponse is the raw provider output.
type TextResponse struct {
	Text      string
	Citations []Citation
}

// TextProvider abstracts a generative text provider.
type TextProvider interface {
	SendTextPrompt(ctx context.Context, req TextRequest) (TextResponse, error)
}

// ImageOptions configures image generation.
type ImageOptions struct {
	Count       int
	AspectRatio string
	MIMEType    string
}

// GeneratedImage is one binary image payload.
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// ImageProvider abstracts a generative image provider.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt string, opts ImageOptions) ([]GeneratedImage, error)
}

// FetchObserver receives fetch outcomes for metrics.
type FetchObserver interface {
	ObserveFetch(mode FetchMode, outcome FetchOutcome, added int)
}

// ImageObserver receives image generation outcomes for metrics.
type ImageObserver interface {
	ObserveImage(generated bool)
}
