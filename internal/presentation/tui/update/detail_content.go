package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/tesso57/headlines/internal/presentation/tui/state"
)

// MarkdownRenderer renders article details with glamour, rebuilding the
// renderer only when the wrap width changes.
type MarkdownRenderer struct {
	Style string

	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for a glamour standard style.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{Style: style}
}

// Render returns styled output, or the markdown itself when glamour cannot render it.
func (r *MarkdownRenderer) Render(markdown string, width int) string {
	if r == nil {
		return markdown
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.Style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

func buildDetailMarkdown(s *state.ModelState) string {
	item := s.Detail.Item
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(item.Title))

	meta := []string{}
	if item.Category != "" {
		meta = append(meta, "**"+escapeMarkdown(item.Category)+"**")
	}
	meta = append(meta, escapeMarkdown(item.SourceLabel()))
	if item.Timestamp != "" {
		meta = append(meta, item.Timestamp)
	}
	b.WriteString(strings.Join(meta, " · "))
	b.WriteString("\n\n")

	summary := strings.TrimSpace(item.Summary)
	if summary == "" {
		summary = "_No summary available._"
	} else {
		summary = escapeMarkdown(summary)
	}
	b.WriteString(summary)
	b.WriteString("\n\n---\n\n")

	imageKey := s.Keys.OpenImage.Help().Key
	switch {
	case s.Detail.ImageLoading:
		b.WriteString("- **Illustration:** generating...\n")
	case s.Detail.Image.Generated:
		fmt.Fprintf(&b, "- **Illustration:** AI-generated image ready (press `%s` to open)\n", imageKey)
	default:
		fmt.Fprintf(&b, "- **Illustration:** placeholder `%s` (press `%s` to open)\n", s.Detail.Image.Reference(), imageKey)
	}

	if item.SourceURL != "" {
		fmt.Fprintf(&b, "- **Source:** %s (press `%s` to open)\n", item.SourceURL, s.Keys.OpenSource.Help().Key)
	} else {
		b.WriteString("- **Source:** no link available\n")
	}

	speakKey := s.Keys.Speak.Help().Key
	if s.Speaking {
		fmt.Fprintf(&b, "- **Read aloud:** speaking... (press `%s` to stop)\n", speakKey)
	} else {
		fmt.Fprintf(&b, "- **Read aloud:** press `%s` to listen\n", speakKey)
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

func refreshDetailViewport(s *state.ModelState, deps Deps, top bool) {
	if s == nil {
		return
	}
	s.Viewport.SetContent(deps.Markdown.Render(buildDetailMarkdown(s), detailWrapWidth(s)))
	if top {
		s.Viewport.GotoTop()
	}
}

func detailWrapWidth(s *state.ModelState) int {
	viewportContentWidth := s.Viewport.Width - s.Viewport.Style.GetHorizontalFrameSize()
	if viewportContentWidth > 0 {
		return viewportContentWidth
	}
	// Before the first resize.
	return 80
}
