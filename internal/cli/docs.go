package cli

import (
	"bufio"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/aidanlsb/magpie/docs"
	"github.com/aidanlsb/magpie/internal/ui"
)

type docsTopicView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type docsTopicContent struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse the bundled guides",
	Long: `Browse the Markdown guides bundled into the magpie binary.

The guides cover concepts a usage line can't: query syntax, indexing,
the interactive shell. For command-level usage, use 'magpie help <command>'.

Examples:
  magpie docs
  magpie docs queries
  magpie docs indexes --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listDocsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild magpie so the bundled guides are available")
		}

		if len(args) == 0 {
			return outputDocsTopics(topics)
		}

		topic, ok := findDocsTopic(topics, args[0])
		if !ok {
			return docsTopicNotFound(args[0], topics)
		}
		return outputDocsTopicContent(topic)
	},
}

// listDocsTopics enumerates the embedded guides, sorted by id.
func listDocsTopics() ([]docsTopicView, error) {
	entries, err := fs.ReadDir(builtindocs.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("read bundled guides: %w", err)
	}

	var topics []docsTopicView
	for _, entry := range entries {
		id, isGuide := strings.CutSuffix(entry.Name(), ".md")
		if entry.IsDir() || !isGuide {
			continue
		}
		topics = append(topics, docsTopicView{ID: id, Title: guideTitle(entry.Name(), id)})
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("no guides bundled")
	}

	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

func findDocsTopic(topics []docsTopicView, raw string) (docsTopicView, bool) {
	needle := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(raw), ".md"))
	for _, topic := range topics {
		if topic.ID == needle {
			return topic, true
		}
	}
	return docsTopicView{}, false
}

func outputDocsTopics(topics []docsTopicView) error {
	if isJSONOutput() {
		outputSuccess(struct {
			Topics      []docsTopicView `json:"topics"`
			CommandDocs string          `json:"command_docs"`
		}{topics, "magpie help <command>"}, &Meta{Count: len(topics)})
		return nil
	}

	fmt.Println("Guides:")
	for _, topic := range topics {
		fmt.Printf("  %-32s %s\n", "magpie docs "+topic.ID, topic.Title)
	}
	fmt.Println()
	fmt.Println(ui.Hint("For command usage, run 'magpie help <command>'."))
	return nil
}

func outputDocsTopicContent(topic docsTopicView) error {
	content, err := fs.ReadFile(builtindocs.FS, topic.ID+".md")
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(docsTopicContent{
			Topic:   topic.ID,
			Title:   topic.Title,
			Content: string(content),
		}, nil)
		return nil
	}

	rendered := string(content)
	display := ui.NewDisplayContext()
	if display.IsTTY {
		if out, renderErr := ui.RenderMarkdown(string(content), display.ProseWidth()); renderErr == nil {
			rendered = out
		}
	}

	fmt.Print(rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Println()
	}
	return nil
}

func docsTopicNotFound(input string, topics []docsTopicView) error {
	// listDocsTopics already sorted by id.
	ids := make([]string, len(topics))
	for i, topic := range topics {
		ids[i] = topic.ID
	}
	return handleErrorMsg(
		ErrInvalidInput,
		fmt.Sprintf("unknown guide: %s", input),
		fmt.Sprintf("Run 'magpie docs' to list guides (available: %s)", strings.Join(ids, ", ")),
	)
}

// guideTitle pulls the first "# " heading out of a guide, falling back to a
// title derived from the file name.
func guideTitle(guidePath, fallbackSlug string) string {
	f, err := builtindocs.FS.Open(guidePath)
	if err != nil {
		return titleFromSlug(fallbackSlug)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		title, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "# ")
		if !ok {
			continue
		}
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return titleFromSlug(fallbackSlug)
}

// titleFromSlug turns "getting-started" into "Getting Started".
func titleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	if len(words) == 0 {
		return slug
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
