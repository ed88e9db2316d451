// Package github provides a corpus source reading JSON files from a
// directory in a GitHub repository.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driven"
	"github.com/shastra-labs/shastra-cli/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

// Config locates the corpus inside a repository.
type Config struct {
	// Owner and Repo identify the repository.
	Owner string
	Repo  string

	// Path is the directory holding corpus JSON files ("" for the root).
	Path string

	// Ref is a branch, tag or commit SHA ("" for the default branch).
	Ref string

	// Token is an optional personal access token for private repos and
	// higher rate limits.
	Token string
}

// Source fetches corpus files through the GitHub contents API.
type Source struct {
	cfg    Config
	client *gh.Client
}

// NewSource creates a GitHub corpus source.
func NewSource(cfg Config) *Source {
	var hc *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = DefaultTimeout

	return &Source{
		cfg:    cfg,
		client: gh.NewClient(hc),
	}
}

// Name identifies the source for logging.
func (s *Source) Name() string {
	return fmt.Sprintf("github:%s/%s/%s", s.cfg.Owner, s.cfg.Repo, s.cfg.Path)
}

// Fetch lists the corpus directory and downloads every JSON file in it.
// A failure to list the directory fails the load; a failure to download
// one file skips that file.
func (s *Source) Fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: s.cfg.Ref}
	_, entries, _, err := s.client.Repositories.GetContents(
		ctx, s.cfg.Owner, s.cfg.Repo, s.cfg.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", domain.ErrCorpusLoad, s.Name(), err)
	}

	files := make(map[string]json.RawMessage)
	for _, entry := range entries {
		if entry.GetType() != "file" || !strings.HasSuffix(strings.ToLower(entry.GetName()), ".json") {
			continue
		}

		content, _, _, err := s.client.Repositories.GetContents(
			ctx, s.cfg.Owner, s.cfg.Repo, entry.GetPath(), opts)
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.GetPath(), err)
			continue
		}
		raw, err := content.GetContent()
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.GetPath(), err)
			continue
		}
		files[entry.GetName()] = json.RawMessage(raw)
	}

	return files, nil
}
