package snippet

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is a fenced code block lifted out of a snippet's raw text.
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// ExtractCodeBlocks parses rawText as markdown and returns its fenced
// code blocks in document order. Indented code blocks are ignored;
// AI-chat transcripts use fences. A missing info string yields an
// empty Language.
func ExtractCodeBlocks(rawText string) []CodeBlock {
	if strings.TrimSpace(rawText) == "" {
		return nil
	}

	source := []byte(rawText)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := ""
		if l := fenced.Language(source); l != nil {
			lang = string(l)
		}

		var buf bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}

		blocks = append(blocks, CodeBlock{
			Language: lang,
			Code:     strings.TrimRight(buf.String(), "\n"),
		})
		return ast.WalkContinue, nil
	})

	return blocks
}
