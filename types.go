package coursesync

// SectionType is the kind of a course section as reported by the content service.
type SectionType string

const (
	// SectionHeader starts a new chapter.
	SectionHeader SectionType = "HEADER"
	// SectionText is a translatable body section.
	SectionText SectionType = "TEXT"
)

// Section is one node of a course version's content list.
type Section struct {
	ID    string      `json:"id"`
	Type  SectionType `json:"type"`
	Title string      `json:"title"`
}

// TranslateRequest contains the parameters for a single translation request.
type TranslateRequest struct {
	Text         string            // Exact source text
	TargetLang   string            // Target language identifier (e.g., "en", "English")
	StrictTerms  map[string]string // Mandated renderings for specific terms
	Instructions string            // Extra instructions appended to the system prompt
}

// Stats counts how a Translator resolved its calls.
type Stats struct {
	CacheHits     int // Served from the cache
	ProviderCalls int // Sent to the backend
}

const (
	// DefaultNamingLanguage is the language titles are translated into for slugs.
	DefaultNamingLanguage = "English"

	// DefaultSourceDir is the root of the untranslated document tree.
	DefaultSourceDir = "ru"

	// MarkdownInstructions explains Markdown and frontmatter conventions to the backend.
	MarkdownInstructions = "The provided text is a Markdown document. " +
		"It's important to preserve the formatting, including headers, lists, and code blocks. " +
		"There is a frontmatter section at the beginning of the document (between '---' markers). " +
		"Translate only the values in the frontmatter, not the keys."
)
