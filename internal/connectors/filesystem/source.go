// Package filesystem provides a corpus source reading JSON files from a
// local directory tree.
package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driven"
	"github.com/shastra-labs/shastra-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

// Source reads every .json file under a root directory. File keys are
// slash-separated paths relative to the root, so files in subfolders
// stay distinguishable.
type Source struct {
	root string
}

// NewSource creates a filesystem corpus source rooted at dir.
func NewSource(dir string) *Source {
	return &Source{root: dir}
}

// Name identifies the source for logging.
func (s *Source) Name() string {
	return "filesystem:" + s.root
}

// Fetch walks the root directory and returns the raw content of every
// JSON file. A missing or unreadable root is a corpus load failure; an
// unreadable individual file only skips that file.
func (s *Source) Fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorpusLoad, s.root, err)
	}

	files := make(map[string]json.RawMessage)
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			logger.Warn("Skipping %s: %v", path, readErr)
			return nil
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			rel = path
		}
		files[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", domain.ErrCorpusLoad, s.root, err)
	}

	return files, nil
}
