package coursesync

import "strings"

// LanguageNames maps language codes to the names used in prompts.
// Target languages double as mirror directory names, so short codes are the norm.
var LanguageNames = map[string]string{
	"en": "English",
	"ru": "Russian",
	"de": "German",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"uk": "Ukrainian",
	"be": "Belarusian",
	"kk": "Kazakh",
	"uz": "Uzbek",
	"tr": "Turkish",
	"ar": "Arabic",
	"he": "Hebrew",
	"hi": "Hindi",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese (Simplified)",
	"vi": "Vietnamese",
	"id": "Indonesian",
}

// RegionalNames refines names for locale codes whose region changes the written language.
var RegionalNames = map[string]string{
	"en_GB": "English (United Kingdom)",
	"en_US": "English (United States)",
	"es_MX": "Spanish (Mexico)",
	"pt_BR": "Portuguese (Brazil)",
	"pt_PT": "Portuguese (Portugal)",
	"zh_TW": "Chinese (Traditional)",
}

// GetLanguageName returns the prompt name for a language identifier.
// Locale codes fall back to their base language; anything unknown, such as
// an already spelled-out name like "English", is returned unchanged.
func GetLanguageName(lang string) string {
	locale := NormalizeLocale(lang)
	if name, ok := RegionalNames[locale]; ok {
		return name
	}
	base := strings.ToLower(strings.Split(locale, "_")[0])
	if name, ok := LanguageNames[base]; ok {
		return name
	}
	return lang
}

// NormalizeLocale converts a language code to the standard format (e.g., "pt-BR" → "pt_BR").
func NormalizeLocale(lang string) string {
	return strings.ReplaceAll(lang, "-", "_")
}
