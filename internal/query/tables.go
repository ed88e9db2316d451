package query

// properNounForms maps well-known names and terms to their multi-script
// forms (Roman diacritic + Devanagari). When the term appears in a query
// the whole expansion string is appended once so Devanagari-only verses
// still match Roman-script questions.
var properNounForms = map[string]string{
	"krishna": "krishna kṛṣṇa कृष्ण",
	"rama":    "rama rāma राम",
	"shiva":   "shiva śiva शिव",
	"vishnu":  "vishnu viṣṇu विष्णु",
	"hanuman": "hanuman हनुमान",
	"gita":    "gita gītā गीता",
	"veda":    "veda वेद",
	"yoga":    "yoga योग",
	"dharma":  "dharma धर्म",
	"karma":   "karma कर्म",
}

// properNounOrder fixes the iteration order over properNounForms so the
// processed query is deterministic.
var properNounOrder = []string{
	"krishna", "rama", "shiva", "vishnu", "hanuman",
	"gita", "veda", "yoga", "dharma", "karma",
}

// conceptForms holds the hindi/sanskrit/english renderings of core dharmic
// concepts. All three are appended when the concept occurs in a query.
type conceptForms struct {
	hindi    string
	sanskrit string
	english  string
}

var conceptTranslations = map[string]conceptForms{
	"dharma": {"धर्म", "धर्म", "righteousness"},
	"karma":  {"कर्म", "कर्म", "action"},
	"moksha": {"मोक्ष", "मोक्ष", "liberation"},
	"bhakti": {"भक्ति", "भक्ति", "devotion"},
	"yoga":   {"योग", "योग", "union"},
	"gyana":  {"ज्ञान", "ज्ञान", "knowledge"},
}

var conceptOrder = []string{"dharma", "karma", "moksha", "bhakti", "yoga", "gyana"}

// themes groups related retrieval keywords. A query matching one keyword
// gets up to three siblings from the same theme appended.
var themes = map[string][]string{
	"devotion":   {"bhakti", "love", "surrender", "worship", "prayer"},
	"dharma":     {"duty", "righteousness", "moral", "ethics", "virtue"},
	"karma":      {"action", "deed", "work", "consequence", "result"},
	"moksha":     {"liberation", "salvation", "freedom", "enlightenment"},
	"meditation": {"dhyana", "yoga", "concentration", "mindfulness"},
	"knowledge":  {"gyana", "wisdom", "understanding", "learning"},
}

var themeOrder = []string{"devotion", "dharma", "karma", "moksha", "meditation", "knowledge"}

// scriptureKeywords holds collection-specific hint terms appended when the
// user filters to a single scripture.
var scriptureKeywords = map[string][]string{
	"bhagavad_gita":  {"krishna", "arjuna", "gita", "kurukshetra", "dharma"},
	"ramayana":       {"rama", "sita", "hanuman", "ravana", "lanka"},
	"mahabharata":    {"pandava", "kaurava", "yudhishthira", "bhima", "arjuna"},
	"rigveda":        {"indra", "agni", "soma", "mantra", "hymn"},
	"ramcharitmanas": {"tulsidas", "awadhi", "chaupai", "doha"},
	"vedas":          {"mantra", "sukta", "rishi", "yajna", "sacrifice"},
}

// scriptureFilterNames maps filter labels (lowercased) to the
// scriptureKeywords key they select, most specific first.
var scriptureFilterNames = []struct {
	names []string
	key   string
}{
	{[]string{"ramcharitmanas", "tulsidas"}, "ramcharitmanas"},
	{[]string{"bhagavad gita", "gita"}, "bhagavad_gita"},
	{[]string{"valmiki ramayana", "ramayana"}, "ramayana"},
	{[]string{"mahabharata"}, "mahabharata"},
	{[]string{"rig veda", "rigveda"}, "rigveda"},
	{[]string{"yajurveda", "atharvaveda", "veda"}, "vedas"},
}

// sanskritMarkers distinguish Sanskrit from Hindi inside the shared
// Devanagari script.
var sanskritMarkers = []string{"श्लोक", "मन्त्र", "ॐ", "॥"}

// stopWords are dropped during keyword extraction (English plus common
// Hindi function words).
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "up": {},
	"about": {}, "into": {}, "through": {}, "during": {}, "before": {}, "after": {},
	"above": {}, "below": {}, "between": {}, "among": {}, "within": {},
	"what": {}, "which": {}, "who": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"that": {}, "this": {}, "these": {}, "those": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {}, "might": {},
	"can": {}, "must": {}, "shall": {},
	"say": {}, "says": {}, "said": {}, "tell": {}, "tells": {}, "told": {}, "me": {},
	"का": {}, "की": {}, "के": {}, "में": {}, "से": {}, "को": {}, "पर": {}, "और": {},
	"या": {}, "है": {}, "हैं": {}, "था": {}, "थे": {}, "एक": {}, "यह": {}, "वह": {},
	"जो": {}, "कि": {}, "ने": {}, "तो": {}, "भी": {}, "नहीं": {}, "कर": {},
}
