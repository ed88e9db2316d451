// Package query expands user questions with multilingual synonyms, theme
// terms and collection hints so retrieval works across Sanskrit, Hindi and
// English text. The expander is pure and stateless aside from its fixed
// tables.
package query

import (
	"regexp"
	"strings"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/textnorm"
)

var (
	devanagariRun = regexp.MustCompile(`[` + "ऀ-ॿ" + `]+`)
	wordToken     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Expander builds an ExpandedQuery from a raw question.
type Expander struct{}

// NewExpander creates a query expander.
func NewExpander() *Expander { return &Expander{} }

// Expand processes a question for retrieval: normalization, multi-script
// proper-noun forms, language detection, concept and theme expansion,
// collection hints from the scripture filter, and keyword extraction.
func (e *Expander) Expand(question, scriptureFilter string) domain.ExpandedQuery {
	processed := e.process(question)
	expanded := e.expandConcepts(processed)
	expanded = e.expandThemes(expanded)
	expanded = e.expandScriptureFilter(expanded, scriptureFilter)

	return domain.ExpandedQuery{
		Original:         question,
		Processed:        processed,
		Expanded:         expanded,
		DetectedLanguage: DetectLanguage(processed),
		ScriptureFilter:  scriptureFilter,
		Keywords:         ExtractKeywords(expanded),
	}
}

// process normalizes the question and appends multi-script forms for any
// known proper noun it mentions.
func (e *Expander) process(question string) string {
	processed := textnorm.Normalize(question)
	lower := strings.ToLower(processed)

	for _, term := range properNounOrder {
		if strings.Contains(lower, term) {
			processed += " " + properNounForms[term]
		}
	}
	return processed
}

// expandConcepts appends the hindi, sanskrit and english renderings of
// every core concept the query mentions.
func (e *Expander) expandConcepts(q string) string {
	lower := strings.ToLower(q)
	for _, concept := range conceptOrder {
		if strings.Contains(lower, concept) {
			forms := conceptTranslations[concept]
			q += " " + forms.hindi + " " + forms.sanskrit + " " + forms.english
		}
	}
	return q
}

// expandThemes appends up to three sibling keywords for the first matching
// keyword of each theme.
func (e *Expander) expandThemes(q string) string {
	lower := strings.ToLower(q)
	for _, theme := range themeOrder {
		keywords := themes[theme]
		for _, kw := range keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			var related []string
			for _, other := range keywords {
				if other != kw {
					related = append(related, other)
				}
				if len(related) == 3 {
					break
				}
			}
			q += " " + strings.Join(related, " ")
			break
		}
	}
	return q
}

// expandScriptureFilter appends up to three collection-specific keywords
// when the user restricted the search to one scripture.
func (e *Expander) expandScriptureFilter(q, filter string) string {
	if filter == "" || filter == domain.AllTextsFilter {
		return q
	}
	lower := strings.ToLower(filter)
	for _, entry := range scriptureFilterNames {
		for _, name := range entry.names {
			if !strings.Contains(lower, name) {
				continue
			}
			hints := scriptureKeywords[entry.key]
			if len(hints) > 3 {
				hints = hints[:3]
			}
			return q + " " + strings.Join(hints, " ")
		}
	}
	return q
}

// DetectLanguage identifies the primary language of a query. Devanagari
// text is Sanskrit when it carries shastric markers, otherwise Hindi;
// everything else is treated as English. The corpus holds only these
// three languages, so no general-purpose detector is consulted: a
// non-Devanagari script defaults to English rather than being
// classified further.
func DetectLanguage(text string) string {
	if devanagariRun.MatchString(text) {
		for _, marker := range sanskritMarkers {
			if strings.Contains(text, marker) {
				return domain.LanguageSanskrit
			}
		}
		return domain.LanguageHindi
	}
	return domain.LanguageEnglish
}

// ExtractKeywords tokenizes a query into deduplicated search keywords.
// Stop words and tokens of one or two characters are dropped; contiguous
// Devanagari runs are always kept, even short ones.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)

	var keywords []string
	seen := make(map[string]struct{})
	add := func(tok string) {
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}

	for _, tok := range wordToken.FindAllString(lower, -1) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if len([]rune(tok)) <= 2 {
			continue
		}
		add(tok)
	}

	// Devanagari runs are always kept, even short ones, so script-native
	// terms survive the length filter.
	for _, run := range devanagariRun.FindAllString(text, -1) {
		add(run)
	}

	return keywords
}
