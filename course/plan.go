package course

import (
	"path"

	"github.com/aisystant/coursesync"
)

// Entry is a planned document for one TEXT section.
type Entry struct {
	Section coursesync.Section
	Chapter int
	Number  int
	Dir     string // Chapter directory, slash-separated, "" for the root
	Name    string // Base name without extension, also the image prefix
}

// Path is the document path relative to the tree root.
func (e Entry) Path() string {
	return path.Join(e.Dir, e.Name+".md")
}

// Plan walks sections and returns one Entry per TEXT section. slugs maps a
// section ID to its title slug; missing IDs fall back to slugging the
// original title.
func Plan(sections []coursesync.Section, slugs map[string]string) []Entry {
	var (
		s       State
		entries []Entry
	)
	for _, sec := range sections {
		titleSlug, ok := slugs[sec.ID]
		if !ok {
			titleSlug = Slugify(sec.Title)
		}
		s = Step(s, sec, titleSlug)
		if sec.Type == coursesync.SectionText {
			entries = append(entries, Entry{
				Section: sec,
				Chapter: s.Chapter,
				Number:  s.Section,
				Dir:     s.Dir,
				Name:    SectionName(s.Section, titleSlug),
			})
		}
	}
	return entries
}
