package markup

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// HTMLToMarkdown converts in process.
type HTMLToMarkdown struct{}

// Convert implements Converter.
func (HTMLToMarkdown) Convert(_ context.Context, html string) (string, error) {
	return htmltomarkdown.ConvertString(html)
}

// Pandoc shells out to a pandoc binary.
type Pandoc struct {
	// Binary defaults to "pandoc" on PATH.
	Binary string
	// Format is the pandoc output format, "markdown" by default.
	Format string
}

// Convert implements Converter.
func (p Pandoc) Convert(ctx context.Context, html string) (string, error) {
	bin := p.Binary
	if bin == "" {
		bin = "pandoc"
	}
	format := p.Format
	if format == "" {
		format = "markdown"
	}

	cmd := exec.CommandContext(ctx, bin, "--from", "html", "--to", format)
	cmd.Stdin = strings.NewReader(html)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pandoc: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// NewConverter returns the converter registered under name: "html-to-markdown"
// (the default) or "pandoc".
func NewConverter(name string) (Converter, error) {
	switch name {
	case "", "html-to-markdown":
		return HTMLToMarkdown{}, nil
	case "pandoc":
		return Pandoc{}, nil
	default:
		return nil, fmt.Errorf("unknown converter %q", name)
	}
}
