package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// defaultCodeTheme is the Chroma theme used for code blocks when none is
// configured.
const defaultCodeTheme = "monokai"

// markdownCodeTheme is the active Chroma theme for rendered code blocks.
var markdownCodeTheme = defaultCodeTheme

// ConfigureMarkdownCodeTheme selects the Chroma syntax theme used for
// markdown code blocks. Unknown themes fall back to the default.
func ConfigureMarkdownCodeTheme(theme string) {
	name := strings.ToLower(strings.TrimSpace(theme))
	if _, ok := styles.Registry[name]; !ok {
		name = defaultCodeTheme
	}
	markdownCodeTheme = name
}

// RenderMarkdown renders markdown for terminal display with magpie's glamour
// style sheet. The output always ends in exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(magpieMarkdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(content)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(out, "\n") + "\n", nil
}

// magpieMarkdownStyle builds the glamour style sheet: accent-colored
// underlined headings, muted quotes and links, and Chroma-highlighted code
// blocks.
func magpieMarkdownStyle() ansi.StyleConfig {
	var (
		muted = ptr("8")
		code  = ptr("252")
		cfg   ansi.StyleConfig
	)

	cfg.Document.BlockPrefix = "\n"
	cfg.Document.BlockSuffix = "\n"
	cfg.Document.Margin = ptr(uint(MarkdownRenderMargin))

	cfg.List.LevelIndent = 2
	cfg.Item.BlockPrefix = "• "
	cfg.Enumeration.BlockPrefix = ". "

	cfg.BlockQuote.Color = muted
	cfg.BlockQuote.Indent = ptr(uint(1))
	cfg.BlockQuote.IndentToken = ptr("│ ")

	cfg.Heading.BlockSuffix = "\n"
	cfg.Heading.Bold = ptr(true)
	if color, ok := AccentColor(); ok {
		cfg.Heading.Color = ptr(color)
	}
	cfg.H1.Prefix = "# "
	cfg.H1.Underline = ptr(true)
	cfg.H2.Prefix = "## "
	cfg.H2.Underline = ptr(true)
	cfg.H3.Prefix = "### "
	cfg.H4.Prefix = "#### "
	cfg.H5.Prefix = "##### "
	cfg.H6.Prefix = "###### "
	cfg.H6.Bold = ptr(false)

	cfg.Emph.Italic = ptr(true)
	cfg.Strong.Bold = ptr(true)
	cfg.Strikethrough.CrossedOut = ptr(true)

	cfg.HorizontalRule.Color = muted
	cfg.HorizontalRule.Format = "\n--------\n"

	cfg.Link.Color = muted
	cfg.Link.Underline = ptr(true)
	cfg.LinkText.Color = muted
	cfg.LinkText.Bold = ptr(true)

	cfg.Code.Prefix = "`"
	cfg.Code.Suffix = "`"
	cfg.Code.Color = code

	cfg.CodeBlock.Color = code
	cfg.CodeBlock.Margin = ptr(uint(MarkdownRenderMargin))
	cfg.CodeBlock.Theme = markdownCodeTheme

	cfg.Table.CenterSeparator = ptr("│")
	cfg.Table.ColumnSeparator = ptr("│")
	cfg.Table.RowSeparator = ptr("─")

	return cfg
}

func ptr[T any](v T) *T { return &v }
