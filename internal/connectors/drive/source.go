// Package drive provides a corpus source reading JSON files from a
// Google Drive folder.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driven"
	"github.com/shastra-labs/shastra-cli/internal/logger"
)

// MaxFileSize caps individual corpus file downloads (10MB).
const MaxFileSize = 10 * 1024 * 1024

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

// Config locates the corpus folder and authenticates the API.
type Config struct {
	// FolderID is the Drive folder holding corpus JSON files.
	FolderID string

	// APIKey authenticates against publicly shared folders.
	APIKey string

	// Token is an OAuth access token; used when APIKey is empty.
	Token string
}

// Source fetches corpus files through the Drive API.
type Source struct {
	cfg Config
	svc *drive.Service
}

// NewSource creates a Drive corpus source. The API key takes precedence
// over the OAuth token when both are set.
func NewSource(ctx context.Context, cfg Config) (*Source, error) {
	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.Token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		opts = append(opts, option.WithTokenSource(ts))
	default:
		return nil, fmt.Errorf("drive: API key or token required")
	}

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: creating service: %w", err)
	}

	return &Source{cfg: cfg, svc: svc}, nil
}

// Name identifies the source for logging.
func (s *Source) Name() string {
	return "drive:" + s.cfg.FolderID
}

// Fetch lists the folder and downloads every JSON file in it. A listing
// failure fails the load; a failure to download one file skips it.
func (s *Source) Fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	files := make(map[string]json.RawMessage)

	query := fmt.Sprintf("'%s' in parents and trashed = false", s.cfg.FolderID)
	pageToken := ""
	for {
		call := s.svc.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType, size)").
			PageSize(100).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: listing %s: %v", domain.ErrCorpusLoad, s.Name(), err)
		}

		for _, f := range list.Files {
			if !strings.HasSuffix(strings.ToLower(f.Name), ".json") {
				continue
			}
			if f.Size > MaxFileSize {
				logger.Warn("Skipping %s: %d bytes exceeds limit", f.Name, f.Size)
				continue
			}

			data, err := s.download(ctx, f.Id)
			if err != nil {
				logger.Warn("Skipping %s: %v", f.Name, err)
				continue
			}
			files[f.Name] = data
		}

		pageToken = list.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return files, nil
}

// download fetches one file's content with a size limit.
func (s *Source) download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := s.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(io.LimitReader(resp.Body, MaxFileSize))
}
