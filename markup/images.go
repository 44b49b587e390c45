package markup

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/net/html"
)

// ImagePathPrefix marks image sources served by the content host.
const ImagePathPrefix = "/text/"

// ImageSources returns the distinct /text/ image sources in markup, in
// document order.
func ImageSources(markup string) []string {
	var srcs []string
	seen := make(map[string]bool)

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return srcs
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tok := z.Token()
		if tok.Data != "img" {
			continue
		}
		for _, a := range tok.Attr {
			if a.Key != "src" || !strings.HasPrefix(a.Val, ImagePathPrefix) {
				continue
			}
			if !seen[a.Val] {
				seen[a.Val] = true
				srcs = append(srcs, a.Val)
			}
		}
	}
}

// ImageFileName is the local name for src: prefix, a dash, then the source
// base name.
func ImageFileName(prefix, src string) string {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	return prefix + "-" + path.Base(p)
}

// LocalizeImages downloads every /text/ image into dir and rewrites all of
// its references to the local file name. A failed download is logged and
// its reference is left alone.
func LocalizeImages(ctx context.Context, f Fetcher, markup, baseURL, dir, prefix string) string {
	for _, src := range ImageSources(markup) {
		name := ImageFileName(prefix, src)

		data, err := f.Fetch(ctx, strings.TrimRight(baseURL, "/")+src)
		if err != nil {
			log.Errorf("markup: image %s: %v", src, err)
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Errorf("markup: image dir %s: %v", dir, err)
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			log.Errorf("markup: image %s: %v", name, err)
			continue
		}

		if escaped := html.EscapeString(src); escaped != src {
			markup = strings.ReplaceAll(markup, escaped, name)
		}
		markup = strings.ReplaceAll(markup, src, name)
	}
	return markup
}
