package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/fundwatch"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	statementsBlock = "statements" // every line is a valid statement
	ignoredBlock    = "ignored"    // no line is a valid statement
)

func TestTopics(t *testing.T) {
	// every topic listed in readme.md exists, and every topic is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); m != nil {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		if _, err := Topic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	all, err := List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}

	if _, err := Topic("nope"); err == nil {
		t.Error("Topic() of an unknown topic should fail")
	}
	everything, err := Topic("*")
	if err != nil {
		t.Fatalf("Topic(*) error = %v", err)
	}
	for _, title := range []string{"# Importing statements", "# Configuration", "# Export"} {
		if !strings.Contains(everything, title) {
			t.Errorf("Topic(*) misses %q", title)
		}
	}
}

func TestStatementBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	var checked int
	for _, file := range files {
		for _, block := range parseMarkdown(t, file) {
			checked++
			lines := nonBlank(block.Content)
			got := fundwatch.Extract(block.Content)
			switch block.Type {
			case statementsBlock:
				if len(got) != len(lines) {
					t.Errorf("%s:%d: %d statements recognised out of %d lines", block.File, block.Line, len(got), len(lines))
				}
			case ignoredBlock:
				for _, c := range got {
					t.Errorf("%s:%d: unexpected statement %q", block.File, block.Line, c.RawLine())
				}
			}
		}
	}
	if checked == 0 {
		t.Error("no statement block found in the docs")
	}
}

// Block is a fenced code block of a markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

// parseMarkdown returns the statements and ignored blocks of a markdown file.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		lang := string(fcb.Info.Segment.Value(content))
		if lang != statementsBlock && lang != ignoredBlock {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, &Block{
			Type:    lang,
			Content: b.String(),
			File:    file,
			Line:    bytes.Count(content[:fcb.Info.Segment.Start], []byte{'\n'}) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

func nonBlank(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
