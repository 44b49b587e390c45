package markup

import (
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Placeholders carry footnote bodies through conversion. They are plain
// letters so no converter escapes or reflows them.
const (
	FootnoteOpen  = "CSFNOPENX"
	FootnoteClose = "CSFNCLOSEX"
)

// footnoteSelector matches the popup idiom: a clickable span with a
// superscript marker and a hidden span carrying the body.
const footnoteSelector = "span.sspopup"

// footnoteBodyPrefix is the close button text at the start of every popup body.
const footnoteBodyPrefix = "[x]"

var (
	// footnoteDefPair finds two footnote definitions with no blank line between them.
	footnoteDefPair = regexp.MustCompile(`(?m)(\[\^\d+\]: [^\n]*?)(\n?)(\[\^\d+\]: )`)
	// fencedDiv matches pandoc fenced div markers, with or without attributes.
	fencedDiv = regexp.MustCompile(`(?m)^[ \t]*:{3,}[ \t]*(\{[^}\n]*\}|[\w-]+)?[ \t]*(\n|$)`)
)

// DefaultPreRules returns the rules applied to HTML before conversion.
func DefaultPreRules() []Rule {
	return []Rule{
		{Name: "footnote-placeholders", Apply: ExtractFootnotes},
	}
}

// DefaultPostRules returns the rules applied to Markdown after conversion.
func DefaultPostRules() []Rule {
	return []Rule{
		{Name: "footnote-restore", Apply: RestoreFootnotes},
		{Name: "footnote-spacing", Apply: SpaceFootnoteDefinitions},
		{Name: "fenced-divs", Apply: StripFencedDivs},
	}
}

// ExtractFootnotes replaces every popup footnote with its body wrapped in
// placeholders. Markup without popups is returned untouched.
func ExtractFootnotes(html string) (string, error) {
	if !strings.Contains(html, "sspopup") {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	popups := doc.Find(footnoteSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ChildrenFiltered("span.sspopuptext").Length() > 0
	})
	if popups.Length() == 0 {
		return html, nil
	}

	var replaceErr error
	popups.Each(func(_ int, s *goquery.Selection) {
		body, err := s.ChildrenFiltered("span.sspopuptext").First().Html()
		if err != nil {
			replaceErr = err
			return
		}
		body = strings.TrimSpace(body)
		body = strings.TrimSpace(strings.TrimPrefix(body, footnoteBodyPrefix))
		s.ReplaceWithHtml(FootnoteOpen + body + FootnoteClose)
	})
	if replaceErr != nil {
		return "", replaceErr
	}

	return doc.Find("body").Html()
}

// RestoreFootnotes turns placeholder pairs into inline ^[...] footnotes.
// Unpaired brackets in a body are escaped so they cannot end the note early.
func RestoreFootnotes(md string) (string, error) {
	var b strings.Builder
	for {
		before, rest, ok := strings.Cut(md, FootnoteOpen)
		if !ok {
			b.WriteString(strings.ReplaceAll(md, FootnoteClose, "]"))
			return b.String(), nil
		}
		b.WriteString(strings.ReplaceAll(before, FootnoteClose, "]"))

		body, after, ok := strings.Cut(rest, FootnoteClose)
		if !ok {
			b.WriteString("^[")
			md = rest
			continue
		}
		b.WriteString("^[" + escapeUnpairedBrackets(body) + "]")
		md = after
	}
}

// escapeUnpairedBrackets backslash-escapes every [ or ] without a partner.
// Already escaped brackets are left alone.
func escapeUnpairedBrackets(s string) string {
	out := make([]byte, 0, len(s)+4)
	var open []int
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			out = append(out, c)
			if i+1 < len(s) {
				i++
				out = append(out, s[i])
			}
		case '[':
			open = append(open, len(out))
			out = append(out, c)
		case ']':
			if len(open) > 0 {
				open = open[:len(open)-1]
				out = append(out, c)
			} else {
				out = append(out, '\\', c)
			}
		default:
			out = append(out, c)
		}
	}
	for k := len(open) - 1; k >= 0; k-- {
		out = slices.Insert(out, open[k], '\\')
	}
	return string(out)
}

// SpaceFootnoteDefinitions puts a blank line between consecutive footnote definitions.
func SpaceFootnoteDefinitions(md string) (string, error) {
	for {
		out := footnoteDefPair.ReplaceAllString(md, "$1\n\n$3")
		if out == md {
			return out, nil
		}
		md = out
	}
}

// StripFencedDivs removes converter div markers that carry no content.
func StripFencedDivs(md string) (string, error) {
	return fencedDiv.ReplaceAllString(md, ""), nil
}
