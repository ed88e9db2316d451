package domain

// SearchResult represents a single retrieved passage.
type SearchResult struct {
	// Chunk is the matched chunk with its unit metadata.
	Chunk Chunk

	// SimilarityScore is the relevance score, higher is more relevant.
	// Cosine similarity for embedding search, normalized keyword overlap
	// for lexical search.
	SimilarityScore float64

	// MatchCount is the raw number of matched query tokens. Only set by
	// the lexical matcher.
	MatchCount int
}

// AskOptions configures an ask request.
type AskOptions struct {
	// ScriptureFilter is a collection display name, or AllTextsFilter to
	// search everything.
	ScriptureFilter string

	// LanguagePreference is "all" or one of the Language* constants. It
	// controls which content field presenters show first; retrieval
	// itself always searches all languages.
	LanguagePreference string

	// TopK is the maximum number of sources to return (default 5).
	TopK int
}

// AskResponse is the result of one ask request.
type AskResponse struct {
	// Sources are the ranked passages grounding the answer, best first.
	Sources []SearchResult

	// Expanded is the query expansion trace.
	Expanded ExpandedQuery

	// SearchMethod records which path produced the sources,
	// "embedding" or "keyword".
	SearchMethod string

	// Message is set when Sources is empty. An empty result is a normal
	// response, not an error.
	Message string
}

// NoResultsMessage is returned when retrieval finds nothing relevant.
const NoResultsMessage = "No relevant passages were found for your question. " +
	"Try rephrasing it, or ask about topics such as dharma, karma, devotion or spiritual practice."
