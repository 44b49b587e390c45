// Package provider implements LLM translation backends.
package provider

import "github.com/aisystant/coursesync"

// AIProvider is the interface for AI translation backends.
// This is an alias to the main package interface for convenience.
type AIProvider = coursesync.AIProvider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = coursesync.TranslateRequest
