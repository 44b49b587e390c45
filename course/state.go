// Package course lays a course version's flat section list out as a
// numbered chapter/section tree of Markdown documents.
package course

import (
	"fmt"
	"regexp"

	"github.com/aisystant/coursesync"
	"github.com/gosimple/slug"
)

// State is the position reached while walking a section list.
type State struct {
	Chapter int    // 1-based once the first section is seen
	Section int    // TEXT sections seen in the current chapter
	Dir     string // Chapter directory relative to the tree root
}

var leadingNumber = regexp.MustCompile(`^[0-9]+-*`)

// Slugify turns a title into a path segment. Any leading number already in
// the title is dropped so the counter prefix appears exactly once.
func Slugify(title string) string {
	s := leadingNumber.ReplaceAllString(slug.Make(title), "")
	if s == "" {
		return "untitled"
	}
	return s
}

// ChapterDir is the directory for a chapter. Chapter 1 is the tree root.
func ChapterDir(chapter int, titleSlug string) string {
	if chapter <= 1 {
		return ""
	}
	return fmt.Sprintf("%02d-%s", chapter, titleSlug)
}

// SectionName is the base name, without extension, of a section document.
func SectionName(section int, titleSlug string) string {
	return fmt.Sprintf("%02d-%s", section, titleSlug)
}

// StartsChapter reports whether sec opens a new chapter in state s.
func StartsChapter(s State, sec coursesync.Section) bool {
	return sec.Type == coursesync.SectionHeader || s.Chapter == 0
}

// Step advances s over one section. titleSlug is the slug of the
// section's naming-language title. Sections that are neither HEADER nor
// TEXT leave s unchanged unless they are the first element.
func Step(s State, sec coursesync.Section, titleSlug string) State {
	if StartsChapter(s, sec) {
		s.Chapter++
		s.Section = 0
		s.Dir = ChapterDir(s.Chapter, titleSlug)
	}
	if sec.Type == coursesync.SectionText {
		s.Section++
	}
	return s
}
