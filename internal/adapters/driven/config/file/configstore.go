// Package file provides TOML-backed configuration for the Shastra CLI.
// Configuration lives at ~/.shastra/config.toml; a missing file yields
// the defaults.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the full CLI configuration.
type Config struct {
	// Corpus selects the scripture source.
	Corpus CorpusConfig `toml:"corpus"`

	// Embedding configures the optional embedding provider.
	Embedding EmbeddingConfig `toml:"embedding"`

	// Retrieval tunes search behaviour.
	Retrieval RetrievalConfig `toml:"retrieval"`

	// DataDir is where the index database lives.
	// Empty means ~/.shastra/data.
	DataDir string `toml:"data_dir"`
}

// CorpusConfig selects and parameterizes the corpus source.
type CorpusConfig struct {
	// Source is "filesystem", "github" or "drive".
	Source string `toml:"source"`

	// Path is the local corpus directory for the filesystem source.
	Path string `toml:"path"`

	// GitHub configures the github source.
	GitHub GitHubSourceConfig `toml:"github"`

	// Drive configures the drive source.
	Drive DriveSourceConfig `toml:"drive"`
}

// GitHubSourceConfig points at a repository directory of corpus files.
type GitHubSourceConfig struct {
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
	Path  string `toml:"path"`
	Ref   string `toml:"ref"`
	Token string `toml:"token"`
}

// DriveSourceConfig points at a Google Drive folder of corpus files.
type DriveSourceConfig struct {
	FolderID string `toml:"folder_id"`
	APIKey   string `toml:"api_key"`
	Token    string `toml:"token"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama", "openai" or "" for keyword-only mode.
	Provider string `toml:"provider"`

	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"api_key"`
	Dimensions int    `toml:"dimensions"`
}

// RetrievalConfig tunes chunking and search.
type RetrievalConfig struct {
	ChunkSize    int     `toml:"chunk_size"`
	ChunkOverlap int     `toml:"chunk_overlap"`
	TopK         int     `toml:"top_k"`
	Threshold    float64 `toml:"similarity_threshold"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Corpus: CorpusConfig{
			Source: "filesystem",
			Path:   "corpus",
		},
		Retrieval: RetrievalConfig{
			ChunkSize:    512,
			ChunkOverlap: 50,
			TopK:         5,
			Threshold:    0.3,
		},
	}
}

// Store loads and persists the configuration file.
type Store struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewStore creates a config store. If configDir is empty, defaults to
// ~/.shastra. An existing config file is loaded immediately.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".shastra")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
		config:   DefaultConfig(),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update replaces the configuration and persists immediately.
func (s *Store) Update(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	return s.save()
}

// Save persists the current configuration to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *Store) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	// Restricted permissions, the file may hold API keys
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. Fields absent from the
// file keep their defaults.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet, keep defaults
			return nil
		}
		return err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.config = cfg
	return nil
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.filePath
}
