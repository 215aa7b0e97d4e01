package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tesso57/headlines/internal/domain/news"
)

const (
	placeholderImageURL = "https://picsum.photos/seed/%s/1200/675"
	placeholderSeedLen  = 10
	defaultImageMIME    = "image/jpeg"
)

// ArticleImage is a displayable image reference for an article.
type ArticleImage struct {
	Data      []byte
	MIMEType  string
	URL       string
	Generated bool
}

// Reference returns a data URI for generated images and the placeholder URL otherwise.
func (img ArticleImage) Reference() string {
	if !img.Generated {
		return img.URL
	}
	return fmt.Sprintf("data:%s;base64,%s", img.mimeType(), base64.StdEncoding.EncodeToString(img.Data))
}

// WriteTemp writes generated image bytes to a temporary file and returns its path.
// Placeholder images return their URL unchanged.
func (img ArticleImage) WriteTemp() (string, error) {
	if !img.Generated {
		if img.URL == "" {
			return "", errors.New("image has no reference")
		}
		return img.URL, nil
	}
	ext := ".jpg"
	if strings.HasSuffix(img.mimeType(), "png") {
		ext = ".png"
	}
	f, err := os.CreateTemp("", "headlines-*"+ext)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(img.Data); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return f.Name(), nil
}

func (img ArticleImage) mimeType() string {
	if img.MIMEType == "" {
		return defaultImageMIME
	}
	return img.MIMEType
}

// ArticleService produces illustrations for opened articles.
type ArticleService struct {
	Images   ImageProvider
	Observer ImageObserver
	Log      logrus.FieldLogger
}

// NewArticleService constructs an ArticleService.
func NewArticleService(images ImageProvider, log logrus.FieldLogger) *ArticleService {
	return new(ArticleService{
		Images: images,
		Log:    log,
	})
}

// Illustrate generates an editorial image for the item, falling back to a placeholder.
func (s *ArticleService) Illustrate(ctx context.Context, item news.Item) ArticleImage {
	img, err := s.generate(ctx, item)
	if err != nil {
		s.logger().WithError(err).WithField("title", item.Title).Warn("image generation failed, using placeholder")
		s.observe(false)
		return PlaceholderImage(item.Title)
	}
	s.observe(true)
	return img
}

func (s *ArticleService) generate(ctx context.Context, item news.Item) (ArticleImage, error) {
	if s == nil || s.Images == nil {
		return ArticleImage{}, errors.New("no image provider configured")
	}
	images, err := s.Images.GenerateImage(ctx, buildImagePrompt(item), ImageOptions{
		Count:       1,
		AspectRatio: "16:9",
		MIMEType:    defaultImageMIME,
	})
	if err != nil {
		return ArticleImage{}, err
	}
	if len(images) == 0 || len(images[0].Data) == 0 {
		return ArticleImage{}, errors.New("provider returned no images")
	}
	return ArticleImage{
		Data:      images[0].Data,
		MIMEType:  images[0].MIMEType,
		Generated: true,
	}, nil
}

func buildImagePrompt(item news.Item) string {
	return fmt.Sprintf(
		"A professional news editorial photograph for: %q. %s. Realistic, high-resolution, award-winning photojournalism style.",
		item.Title, item.Summary,
	)
}

// PlaceholderImage builds the deterministic placeholder seeded by the title prefix.
func PlaceholderImage(title string) ArticleImage {
	runes := []rune(title)
	if len(runes) > placeholderSeedLen {
		runes = runes[:placeholderSeedLen]
	}
	return ArticleImage{
		URL: fmt.Sprintf(placeholderImageURL, encodeURIComponent(string(runes))),
	}
}

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}

func (s *ArticleService) observe(generated bool) {
	if s != nil && s.Observer != nil {
		s.Observer.ObserveImage(generated)
	}
}

func (s *ArticleService) logger() logrus.FieldLogger {
	if s != nil && s.Log != nil {
		return s.Log
	}
	return discardLogger
}
