package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// characterExts are tried in order when loading a character by name
var characterExts = []string{".json", ".yaml", ".yml"}

// Loader loads character tuning and stages using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// CharacterPath returns the on-disk path of a character file, for watching.
// It returns the first existing candidate.
func (l *Loader) CharacterPath(name string) (string, error) {
	for _, ext := range characterExts {
		if _, err := fs.Stat(l.fsys, name+ext); err == nil {
			return filepath.Join(l.basePath, name+ext), nil
		}
	}
	return "", fmt.Errorf("failed to find character %s: %w", name, fs.ErrNotExist)
}

// LoadCharacter loads name.json, name.yaml or name.yml layered on top of
// Default and validates the result
func (l *Loader) LoadCharacter(name string) (*CharacterConfig, error) {
	for _, ext := range characterExts {
		data, err := fs.ReadFile(l.fsys, name+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s%s: %w", name, ext, err)
		}
		return ParseCharacter(data, ext)
	}
	return nil, fmt.Errorf("failed to read character %s: %w", name, fs.ErrNotExist)
}

// ParseCharacter decodes character tuning in the format implied by ext
func ParseCharacter(data []byte, ext string) (*CharacterConfig, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse character json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse character yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported character format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("stage %s: tileSize must be positive", name)
	}

	return &cfg, nil
}
