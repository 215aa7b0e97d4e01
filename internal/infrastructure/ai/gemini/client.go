// Package gemini provides text and image providers backed by the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tesso57/headlines/internal/application/usecase"
	"google.golang.org/genai"
)

const defaultTimeout = 60 * time.Second

// Config controls Gemini API access.
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

// Models is the subset of the genai models service used here.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Client implements usecase.TextProvider and usecase.ImageProvider.
type Client struct {
	config Config
	models Models
}

// NewClient connects to the Gemini API with the configured key.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return NewClientWithModels(cfg, client.Models), nil
}

// NewClientWithModels creates a client over a custom models service for tests.
func NewClientWithModels(cfg Config, models Models) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{config: cfg, models: models}
}

// SendTextPrompt asks the text model, optionally grounded with Google Search.
func (c *Client) SendTextPrompt(ctx context.Context, req usecase.TextRequest) (usecase.TextResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var config *genai.GenerateContentConfig
	if req.WebGrounding {
		config = &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		}
	}
	resp, err := c.models.GenerateContent(ctx, c.config.TextModel, genai.Text(req.Prompt), config)
	if err != nil {
		return usecase.TextResponse{}, fmt.Errorf("gemini generate content: %w", err)
	}
	return toTextResponse(resp), nil
}

// GenerateImage asks the image model for pictures.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts usecase.ImageOptions) ([]usecase.GeneratedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.models.GenerateImages(ctx, c.config.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: int32(max(opts.Count, 1)),
		AspectRatio:    opts.AspectRatio,
		OutputMIMEType: opts.MIMEType,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate images: %w", err)
	}
	return toGeneratedImages(resp, opts.MIMEType), nil
}

func toTextResponse(resp *genai.GenerateContentResponse) usecase.TextResponse {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return usecase.TextResponse{}
	}
	candidate := resp.Candidates[0]

	var text strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text.WriteString(part.Text)
		}
	}

	var citations []usecase.Citation
	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			var citation usecase.Citation
			if chunk != nil && chunk.Web != nil {
				citation = usecase.Citation{URI: chunk.Web.URI, Title: chunk.Web.Title}
			}
			// Keep empty records so positions still line up with items.
			citations = append(citations, citation)
		}
	}
	return usecase.TextResponse{Text: text.String(), Citations: citations}
}

func toGeneratedImages(resp *genai.GenerateImagesResponse, fallbackMIME string) []usecase.GeneratedImage {
	if resp == nil {
		return nil
	}
	images := make([]usecase.GeneratedImage, 0, len(resp.GeneratedImages))
	for _, generated := range resp.GeneratedImages {
		if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			continue
		}
		mime := generated.Image.MIMEType
		if mime == "" {
			mime = fallbackMIME
		}
		images = append(images, usecase.GeneratedImage{Data: generated.Image.ImageBytes, MIMEType: mime})
	}
	return images
}
