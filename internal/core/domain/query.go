package domain

// Language tags produced by query language detection.
const (
	LanguageEnglish  = "english"
	LanguageHindi    = "hindi"
	LanguageSanskrit = "sanskrit"
)

// AllTextsFilter is the scripture filter value that disables collection
// filtering.
const AllTextsFilter = "All Texts"

// ExpandedQuery is the multilingual expansion trace of a user question.
// It is returned alongside search results for diagnostics.
type ExpandedQuery struct {
	// Original is the question exactly as asked.
	Original string

	// Processed is the normalized question with multi-script proper-noun
	// forms appended.
	Processed string

	// Expanded is the processed question with concept, theme and
	// scripture-filter terms appended. This is the string that gets
	// embedded or matched.
	Expanded string

	// DetectedLanguage is one of the Language* constants.
	DetectedLanguage string

	// ScriptureFilter is the collection filter the expansion was built for.
	ScriptureFilter string

	// Keywords are the deduplicated search tokens extracted from the
	// expanded query.
	Keywords []string
}
