package markup

import (
	"strings"
	"testing"
)

const popupHTML = `<p>Systems thinking<span class="sspopup" onclick="toggle('fn1')"><sup>1</sup><span class="sspopuptext" id="fn1">[x] see note</span></span> matters.</p>`

func TestExtractFootnotes(t *testing.T) {
	out, err := ExtractFootnotes(popupHTML)
	if err != nil {
		t.Fatalf("ExtractFootnotes failed: %v", err)
	}

	want := "Systems thinking" + FootnoteOpen + "see note" + FootnoteClose + " matters."
	if !strings.Contains(out, want) {
		t.Errorf("Expected %q in output, got %q", want, out)
	}
	if strings.Contains(out, "sspopup") {
		t.Errorf("Popup markup should be gone, got %q", out)
	}
	if strings.Contains(out, "<sup>") {
		t.Errorf("Marker should be gone, got %q", out)
	}
}

func TestExtractFootnotes_KeepsInlineMarkup(t *testing.T) {
	html := `<p>A<span class="sspopup"><sup>2</sup><span class="sspopuptext">[x] read <a href="https://example.com">this</a></span></span></p>`

	out, err := ExtractFootnotes(html)
	if err != nil {
		t.Fatalf("ExtractFootnotes failed: %v", err)
	}

	want := FootnoteOpen + `read <a href="https://example.com">this</a>` + FootnoteClose
	if !strings.Contains(out, want) {
		t.Errorf("Expected %q in output, got %q", want, out)
	}
}

func TestExtractFootnotes_NoPopups(t *testing.T) {
	html := `<div><p>Plain &amp; simple</p></div>`

	out, err := ExtractFootnotes(html)
	if err != nil {
		t.Fatalf("ExtractFootnotes failed: %v", err)
	}
	if out != html {
		t.Errorf("Markup without popups should be untouched, got %q", out)
	}
}

func TestRestoreFootnotes(t *testing.T) {
	note := func(body string) string { return FootnoteOpen + body + FootnoteClose }

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain body", "Systems thinking" + note("see note") + " matters.", "Systems thinking^[see note] matters."},
		{"escaped open, bare close", "A" + note(`second \[bracket]`), `A^[second \[bracket\]]`},
		{"bare close", "A" + note("a ] b"), `A^[a \] b]`},
		{"bare open", "A" + note("a [ b"), `A^[a \[ b]`},
		{"balanced link", "A" + note("see [site](https://example.com)"), "A^[see [site](https://example.com)]"},
		{"already escaped", "A" + note(`x \] y`), `A^[x \] y]`},
		{"two notes", "A" + note("one]") + " B" + note("two"), `A^[one\]] B^[two]`},
		{"no notes", "plain [text]", "plain [text]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RestoreFootnotes(tt.in)
			if err != nil {
				t.Fatalf("RestoreFootnotes failed: %v", err)
			}
			if out != tt.want {
				t.Errorf("RestoreFootnotes(%q) = %q, want %q", tt.in, out, tt.want)
			}
		})
	}
}

func TestSpaceFootnoteDefinitions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adjacent lines", "[^1]: one\n[^2]: two\n[^3]: three", "[^1]: one\n\n[^2]: two\n\n[^3]: three"},
		{"same line", "[^1]: one[^2]: two", "[^1]: one\n\n[^2]: two"},
		{"already spaced", "[^1]: one\n\n[^2]: two", "[^1]: one\n\n[^2]: two"},
		{"no definitions", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SpaceFootnoteDefinitions(tt.in)
			if err != nil {
				t.Fatalf("SpaceFootnoteDefinitions failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripFencedDivs(t *testing.T) {
	md := "::: {.note #intro}\nInside\n:::\n\n::: warning\nCareful\n::::\nAfter"

	out, err := StripFencedDivs(md)
	if err != nil {
		t.Fatalf("StripFencedDivs failed: %v", err)
	}
	if strings.Contains(out, ":::") {
		t.Errorf("Fence markers should be gone, got %q", out)
	}
	for _, want := range []string{"Inside", "Careful", "After"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q to survive, got %q", want, out)
		}
	}
}

func TestDefaultRuleOrder(t *testing.T) {
	pre := DefaultPreRules()
	if len(pre) != 1 || pre[0].Name != "footnote-placeholders" {
		t.Errorf("Unexpected pre rules: %+v", pre)
	}

	post := DefaultPostRules()
	names := make([]string, len(post))
	for i, r := range post {
		names[i] = r.Name
	}
	want := "footnote-restore,footnote-spacing,fenced-divs"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("Post rule order = %s, want %s", got, want)
	}
}
