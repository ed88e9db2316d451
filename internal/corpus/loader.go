// Package corpus flattens heterogeneous multilingual JSON verse files into
// a uniform sequence of scripture units.
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driven"
	"github.com/shastra-labs/shastra-cli/internal/logger"
	"github.com/shastra-labs/shastra-cli/internal/textnorm"
)

// Candidate field names per language bucket, checked in order; the first
// non-empty match wins.
var (
	sanskritFields = []string{"sanskrit", "sloka", "original", "devanagari"}
	hindiFields    = []string{"hindi", "hindi_translation", "meaning_hindi"}
	englishFields  = []string{"english", "translation", "meaning", "text"}
)

// Loader turns a corpus source into scripture units.
type Loader struct {
	source driven.CorpusSource
}

// NewLoader creates a loader over the given source.
func NewLoader(source driven.CorpusSource) *Loader {
	return &Loader{source: source}
}

// Load fetches every file from the source and flattens it into units.
// Malformed files are skipped and recorded in the report; they never abort
// the batch. Returns domain.ErrEmptyCorpus when no file yields a unit.
func (l *Loader) Load(ctx context.Context) ([]domain.ScriptureUnit, *domain.LoadReport, error) {
	files, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: fetch from %s: %v", domain.ErrCorpusLoad, l.source.Name(), err)
	}

	// Deterministic order regardless of map iteration.
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &domain.LoadReport{}
	var units []domain.ScriptureUnit
	seen := make(map[string]int)

	for _, name := range names {
		fileUnits, err := unitsFromFile(name, files[name])
		if err != nil {
			logger.Warn("Skipping %s: %v", name, err)
			report.Failures = append(report.Failures, domain.FileFailure{File: name, Reason: err.Error()})
			continue
		}
		for i := range fileUnits {
			fileUnits[i].ID = dedupeID(fileUnits[i].ID, name, seen)
		}
		units = append(units, fileUnits...)
		report.FilesLoaded++
	}
	report.UnitCount = len(units)

	if len(units) == 0 {
		return nil, report, fmt.Errorf("%w: %d files fetched, %d malformed",
			domain.ErrEmptyCorpus, len(files), len(report.Failures))
	}

	logger.Info("Corpus loaded: %d units from %d files (%d skipped)",
		len(units), report.FilesLoaded, len(report.Failures))
	return units, report, nil
}

// unitsFromFile flattens one raw JSON document into units.
func unitsFromFile(name string, raw json.RawMessage) ([]domain.ScriptureUnit, error) {
	shape, err := detectShape(raw)
	if err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	stem := fileStem(name)
	collection, display := domain.InferCollection(stem)

	base := domain.ScriptureUnit{
		Collection:        collection,
		CollectionDisplay: display,
		SourceFile:        stem,
	}

	switch shape.kind {
	case listOfItems, keyedVerses:
		units := make([]domain.ScriptureUnit, 0, len(shape.items))
		for i, item := range shape.items {
			u := base
			u.ID = stem + "_" + strconv.Itoa(i)
			u.IndexInFile = i
			u.TotalItemsInFile = len(shape.items)
			fillContent(&u, item)
			units = append(units, u)
		}
		return units, nil

	case singleRecord, scalarBlob:
		u := base
		u.ID = stem
		u.TotalItemsInFile = 1
		fillContent(&u, shape.value)
		return []domain.ScriptureUnit{u}, nil

	default:
		return nil, fmt.Errorf("unhandled document shape")
	}
}

// fillContent extracts the language buckets and citation metadata from one
// raw element into the unit. Elements with no recognized field fall back to
// a stringified "text" entry so they stay searchable.
func fillContent(u *domain.ScriptureUnit, item any) {
	u.Content = make(map[string]string)

	obj, ok := item.(map[string]any)
	if !ok {
		u.Content["text"] = textnorm.Normalize(stringify(item))
		return
	}

	if v := firstField(obj, sanskritFields); v != "" {
		u.Content["sanskrit"] = v
	}
	if v := firstField(obj, hindiFields); v != "" {
		u.Content["hindi"] = v
	}
	if v := firstField(obj, englishFields); v != "" {
		u.Content["english"] = v
	}

	u.Chapter = scalarField(obj, "chapter")
	u.VerseNumber = scalarField(obj, "verse_number", "verse")
	u.Speaker = scalarField(obj, "speaker")

	var parts []string
	for _, tag := range []string{"sanskrit", "hindi", "english"} {
		if v := u.Content[tag]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		// Lossy fallback: nothing recognized, keep the whole record.
		u.Content["text"] = textnorm.Normalize(stringify(item))
		return
	}
	u.Content["text"] = strings.Join(parts, " ")
}

// firstField returns the first candidate field with non-empty normalized
// content.
func firstField(obj map[string]any, candidates []string) string {
	for _, key := range candidates {
		if raw, ok := obj[key]; ok {
			if v := textnorm.Normalize(stringify(raw)); v != "" {
				return v
			}
		}
	}
	return ""
}

// scalarField stringifies the first present metadata key.
func scalarField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if raw, ok := obj[key]; ok && raw != nil {
			if s := strings.TrimSpace(stringify(raw)); s != "" {
				return s
			}
		}
	}
	return ""
}

// stringify renders a decoded JSON value as text. Composite values are
// re-encoded as compact JSON.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

// fileStem strips directories and the extension from a file path.
func fileStem(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// parentFolder returns the immediate directory name of a path, if any.
func parentFolder(name string) string {
	dir := path.Dir(strings.ReplaceAll(name, "\\", "/"))
	if dir == "." || dir == "/" {
		return ""
	}
	return path.Base(dir)
}

// dedupeID makes unit ids unique across files. A colliding id first gets
// the parent folder appended, then a numeric counter if it still collides.
func dedupeID(id, filePath string, seen map[string]int) string {
	if _, taken := seen[id]; !taken {
		seen[id] = 1
		return id
	}

	candidate := id
	if folder := parentFolder(filePath); folder != "" {
		candidate = id + "_" + folder
		if _, taken := seen[candidate]; !taken {
			seen[candidate] = 1
			return candidate
		}
	}

	for n := 2; ; n++ {
		numbered := candidate + "_" + strconv.Itoa(n)
		if _, taken := seen[numbered]; !taken {
			seen[numbered] = 1
			return numbered
		}
	}
}
