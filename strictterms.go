package coursesync

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultStrictTermsFile is where strict terms are looked up when no path is configured.
const DefaultStrictTermsFile = "strict_words.json"

// LoadStrictTerms reads a JSON object of term -> mandated translation.
// A missing file yields an empty table.
func LoadStrictTerms(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading strict terms: %w", err)
	}

	terms := map[string]string{}
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("parsing strict terms %s: %w", path, err)
	}
	return terms, nil
}
