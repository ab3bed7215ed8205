package ui

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/reflow/wordwrap"
)

// SegmentKind classifies one rendered line of message content.
type SegmentKind int

const (
	SegmentParagraph SegmentKind = iota
	SegmentBullet
	SegmentPreformatted
)

// Segment is one line of message content after markup classification.
type Segment struct {
	Kind SegmentKind
	Text string
}

// FormatLines splits message content into render segments, one per line.
// The markup is deliberately line-oriented: a line starting with three
// backticks is a single-line preformatted block with the fence stripped
// (there is no multi-line fenced region), a line starting with a bullet
// marker is a bulleted item with the marker stripped, and everything else
// is a plain paragraph. No construct spans multiple lines.
func FormatLines(content string) []Segment {
	lines := strings.Split(content, "\n")
	segments := make([]Segment, 0, len(lines))

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			segments = append(segments, Segment{
				Kind: SegmentPreformatted,
				Text: strings.TrimPrefix(line, "```"),
			})
		case strings.HasPrefix(line, "• "), strings.HasPrefix(line, "- "):
			segments = append(segments, Segment{
				Kind: SegmentBullet,
				Text: line[len("- "):],
			})
		case line == "•", line == "-":
			segments = append(segments, Segment{Kind: SegmentBullet, Text: ""})
		default:
			segments = append(segments, Segment{Kind: SegmentParagraph, Text: line})
		}
	}

	return segments
}

// emphasisPattern matches **text** spans within a single line.
var emphasisPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// renderInline applies inline emphasis styling to a paragraph or bullet line.
func renderInline(text string) string {
	return emphasisPattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(match, "**"), "**")
		return MarkupEmphasisStyle.Render(inner)
	})
}

// highlightPreformatted applies syntax highlighting to a preformatted line
// using chroma's fallback analysis.
func highlightPreformatted(code string) string {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// RenderMarkup renders message content with the line-oriented markup applied,
// word-wrapped to the given width.
func RenderMarkup(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var sb strings.Builder
	for i, seg := range FormatLines(content) {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch seg.Kind {
		case SegmentPreformatted:
			sb.WriteString(MarkupPreformattedStyle.Render(highlightPreformatted(seg.Text)))
		case SegmentBullet:
			bullet := MarkupBulletStyle.Render("• ")
			wrapped := wordwrap.String(renderInline(seg.Text), width-2)
			// Indent continuation lines under the bullet
			wrapped = strings.ReplaceAll(wrapped, "\n", "\n  ")
			sb.WriteString(bullet + wrapped)
		default:
			sb.WriteString(wordwrap.String(renderInline(seg.Text), width))
		}
	}
	return sb.String()
}
