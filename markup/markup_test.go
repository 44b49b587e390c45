package markup

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/aisystant/coursesync"
)

// tagStripper is a stand-in converter that drops tags and keeps text.
type tagStripper struct {
	calls int
	input string
	err   error
}

var anyTag = regexp.MustCompile(`<[^>]+>`)

func (c *tagStripper) Convert(_ context.Context, html string) (string, error) {
	c.calls++
	c.input = html
	if c.err != nil {
		return "", c.err
	}
	return anyTag.ReplaceAllString(html, ""), nil
}

func TestNormalize_Footnote(t *testing.T) {
	conv := &tagStripper{}
	n := NewNormalizer(conv, nil)

	md, err := n.Normalize(context.Background(), popupHTML, t.TempDir(), "01-intro")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if !strings.Contains(md, "^[see note]") {
		t.Errorf("Expected inline footnote, got %q", md)
	}
	if strings.Contains(md, FootnoteOpen) || strings.Contains(md, FootnoteClose) {
		t.Errorf("Placeholders should not survive, got %q", md)
	}
	if strings.Contains(conv.input, "sspopup") {
		t.Errorf("Converter should not see popup markup, got %q", conv.input)
	}
}

func TestNormalize_ImagesBeforeConversion(t *testing.T) {
	dir := t.TempDir()
	f := &mockFetcher{files: map[string][]byte{
		DefaultBaseURL + "/text/img1.png": []byte("x"),
	}}
	conv := &tagStripper{}
	n := NewNormalizer(conv, f)

	_, err := n.Normalize(context.Background(), `<p><img src="/text/img1.png" alt=""></p>`, dir, "02-intro")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !strings.Contains(conv.input, `src="02-intro-img1.png"`) {
		t.Errorf("Converter should see the local name, got %q", conv.input)
	}
}

func TestNormalize_ConverterError(t *testing.T) {
	n := NewNormalizer(&tagStripper{err: errors.New("boom")}, nil)

	_, err := n.Normalize(context.Background(), "<p>x</p>", t.TempDir(), "01-x")
	if err == nil {
		t.Fatal("Expected error")
	}
	var ne *coursesync.NormalizeError
	if !errors.As(err, &ne) {
		t.Fatalf("Expected NormalizeError, got %T", err)
	}
	if ne.Stage != "convert" {
		t.Errorf("Stage = %q, want convert", ne.Stage)
	}
}

func TestNormalize_CustomRules(t *testing.T) {
	upper := Rule{Name: "upper", Apply: func(s string) (string, error) { return strings.ToUpper(s), nil }}
	n := NewNormalizer(&tagStripper{}, nil, WithPreRules(), WithPostRules(upper))

	md, err := n.Normalize(context.Background(), "<p>hello</p>", t.TempDir(), "01-x")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if md != "HELLO" {
		t.Errorf("got %q", md)
	}
}

func TestNormalize_HTMLToMarkdown(t *testing.T) {
	n := NewNormalizer(HTMLToMarkdown{}, nil)

	md, err := n.Normalize(context.Background(), `<h2>Intro</h2>`+popupHTML, t.TempDir(), "01-intro")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	for _, want := range []string{"Intro", "^[see note]", "matters."} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected %q in %q", want, md)
		}
	}
	if strings.Contains(md, "<span") {
		t.Errorf("Raw popup markup leaked: %q", md)
	}
}

func TestNormalize_FootnoteWithBrackets(t *testing.T) {
	n := NewNormalizer(HTMLToMarkdown{}, nil)
	html := `<p>Roles<span class="sspopup"><sup>1</sup><span class="sspopuptext">[x] second [bracket]</span></span> matter.</p>`

	md, err := n.Normalize(context.Background(), html, t.TempDir(), "01-roles")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !strings.Contains(md, `^[second \[bracket\]]`) {
		t.Errorf("footnote body should keep its brackets inside the note, got %q", md)
	}
}

func TestNewConverter(t *testing.T) {
	for _, name := range []string{"", "html-to-markdown", "pandoc"} {
		if _, err := NewConverter(name); err != nil {
			t.Errorf("NewConverter(%q) failed: %v", name, err)
		}
	}
	if _, err := NewConverter("word"); err == nil {
		t.Error("Expected error for unknown converter")
	}
}
