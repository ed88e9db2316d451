package domain

import "strings"

// UnknownCollection is the key for files matching no known scripture.
const UnknownCollection = "unknown"

// UnknownCollectionDisplay is the display label for UnknownCollection.
const UnknownCollectionDisplay = "Other Texts"

// collectionRule maps filename keywords to a collection. Rules are ordered
// most-specific first; the first match wins.
type collectionRule struct {
	keywords []string
	key      string
	display  string
}

var collectionRules = []collectionRule{
	{[]string{"ramcharitmanas", "ramcharit"}, "ramcharitmanas", "Ramcharitmanas"},
	{[]string{"valmiki"}, "valmiki_ramayana", "Valmiki Ramayana"},
	{[]string{"bhagavad", "gita"}, "bhagavad_gita", "Bhagavad Gita"},
	{[]string{"ramayana"}, "ramayana", "Ramayana"},
	{[]string{"mahabharata"}, "mahabharata", "Mahabharata"},
	{[]string{"rigveda", "rig_veda"}, "rigveda", "Rigveda"},
	{[]string{"yajurveda", "yajur_veda"}, "yajurveda", "Yajurveda"},
	{[]string{"atharvaveda", "atharva_veda"}, "atharvaveda", "Atharvaveda"},
}

// InferCollection determines the collection key and display label for a
// source file name. Matching is case-insensitive substring search against
// the rule table; unmatched files fall into UnknownCollection.
func InferCollection(filename string) (key, display string) {
	lower := strings.ToLower(filename)
	for _, rule := range collectionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.key, rule.display
			}
		}
	}
	return UnknownCollection, UnknownCollectionDisplay
}

// MatchesFilter reports whether a unit's display collection satisfies a
// scripture filter. The filter matches by case-insensitive substring so UI
// labels like "Ramayana" select "Valmiki Ramayana" as well.
func MatchesFilter(collectionDisplay, filter string) bool {
	if filter == "" || filter == AllTextsFilter {
		return true
	}
	return strings.Contains(strings.ToLower(collectionDisplay), strings.ToLower(filter))
}
