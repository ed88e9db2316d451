package domain

import "strings"

// ScriptureUnit represents one retrievable verse or record after field
// extraction, before chunking. It is the canonical representation of a
// source JSON element.
type ScriptureUnit struct {
	// ID is the unique identifier within the corpus,
	// "{source_file}_{index}" for list elements or "{source_file}" for
	// single records, disambiguated when files collide.
	ID string

	// Collection is the normalized collection key (e.g. "ramcharitmanas",
	// "valmiki_ramayana", "unknown").
	Collection string

	// CollectionDisplay is the human-readable collection label
	// (e.g. "Ramcharitmanas", "Other Texts").
	CollectionDisplay string

	// SourceFile is the originating file name without extension.
	SourceFile string

	// Content maps language/field tags (sanskrit, hindi, english, text)
	// to extracted strings. The synthesized "text" entry holds the
	// space-joined concatenation of all non-empty language fields.
	Content map[string]string

	// IndexInFile is the position of this unit within its source file.
	IndexInFile int

	// TotalItemsInFile is the number of units the source file produced.
	TotalItemsInFile int

	// Chapter is the chapter reference when the source supplies one.
	Chapter string

	// VerseNumber is the verse reference when the source supplies one.
	VerseNumber string

	// Speaker is the attributed speaker when the source supplies one.
	Speaker string
}

// Text returns the synthesized searchable text of the unit.
func (u *ScriptureUnit) Text() string {
	return u.Content["text"]
}

// Field returns the first non-empty content field among the given tags.
func (u *ScriptureUnit) Field(tags ...string) string {
	for _, tag := range tags {
		if v := strings.TrimSpace(u.Content[tag]); v != "" {
			return v
		}
	}
	return ""
}
