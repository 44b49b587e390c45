package markup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// mockFetcher serves fixed bodies keyed by URL.
type mockFetcher struct {
	files     map[string][]byte
	requested []string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	m.requested = append(m.requested, url)
	if data, ok := m.files[url]; ok {
		return data, nil
	}
	return nil, errors.New("not found")
}

func TestImageSources(t *testing.T) {
	html := `<p><img src="/text/a.png" alt="a"></p>
<img alt="" src="/text/b.jpg"/>
<img src="https://cdn.example.com/c.png">
<img src="/text/a.png" alt="again">`

	got := ImageSources(html)
	want := []string{"/text/a.png", "/text/b.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ImageSources = %v, want %v", got, want)
	}
}

func TestImageFileName(t *testing.T) {
	if got := ImageFileName("02-intro", "/text/img1.png"); got != "02-intro-img1.png" {
		t.Errorf("got %q", got)
	}
	if got := ImageFileName("02-intro", "/text/dir/img1.png?v=3"); got != "02-intro-img1.png" {
		t.Errorf("query should be dropped, got %q", got)
	}
}

func TestLocalizeImages(t *testing.T) {
	dir := t.TempDir()
	f := &mockFetcher{files: map[string][]byte{
		"https://host.example/text/img1.png": []byte("png-bytes"),
	}}

	html := `<p><img src="/text/img1.png" alt=""></p><p><a href="/text/img1.png">full size</a></p>`
	out := LocalizeImages(context.Background(), f, html, "https://host.example/", dir, "02-intro")

	if strings.Contains(out, "/text/img1.png") {
		t.Errorf("All references should be rewritten, got %q", out)
	}
	if strings.Count(out, "02-intro-img1.png") != 2 {
		t.Errorf("Expected both references rewritten, got %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "02-intro-img1.png"))
	if err != nil {
		t.Fatalf("Image not written: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Unexpected image content %q", data)
	}
}

func TestLocalizeImages_FailedFetchKeepsReference(t *testing.T) {
	dir := t.TempDir()
	f := &mockFetcher{files: map[string][]byte{
		"https://host.example/text/ok.png": []byte("ok"),
	}}

	html := `<img src="/text/missing.png"><img src="/text/ok.png">`
	out := LocalizeImages(context.Background(), f, html, "https://host.example", dir, "01-a")

	if !strings.Contains(out, `src="/text/missing.png"`) {
		t.Errorf("Failed image should keep its reference, got %q", out)
	}
	if !strings.Contains(out, `src="01-a-ok.png"`) {
		t.Errorf("Good image should still be localized, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "01-a-missing.png")); !os.IsNotExist(err) {
		t.Error("No file should be written for a failed fetch")
	}
	if len(f.requested) != 2 {
		t.Errorf("Expected 2 fetches, got %d", len(f.requested))
	}
}
