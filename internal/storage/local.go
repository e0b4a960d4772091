package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/seclens/seclens/pkg/types"
)

// LocalStore implements Store on the local filesystem. Each result is
// one JSON document under <base>/sessions named by its session id.
type LocalStore struct {
	baseDir  string
	sessions string
}

// NewLocalStore creates a local store rooted at baseDir, defaulting to
// ~/.seclens when baseDir is empty.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".seclens")
	}

	store := &LocalStore{
		baseDir:  baseDir,
		sessions: filepath.Join(baseDir, "sessions"),
	}
	if err := os.MkdirAll(store.sessions, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return store, nil
}

// SaveResult writes a result atomically via a temp file rename
func (s *LocalStore) SaveResult(_ context.Context, result *types.EvaluationResult) error {
	if result.SessionID == "" {
		return fmt.Errorf("result has no session id")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	path := s.path(result.SessionID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize result: %w", err)
	}
	return nil
}

// LoadResult reads a result by session id
func (s *LocalStore) LoadResult(_ context.Context, sessionID string) (*types.EvaluationResult, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	var result types.EvaluationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse result %s: %w", sessionID, err)
	}
	return &result, nil
}

// ListResults returns metadata for all stored results, newest first
func (s *LocalStore) ListResults(ctx context.Context) ([]ResultInfo, error) {
	files, err := os.ReadDir(s.sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var infos []ResultInfo
	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		sessionID := strings.TrimSuffix(file.Name(), ".json")
		result, err := s.LoadResult(ctx, sessionID)
		if err != nil {
			continue
		}
		infos = append(infos, info(result))
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}

// DeleteResult removes a stored result
func (s *LocalStore) DeleteResult(_ context.Context, sessionID string) error {
	err := os.Remove(s.path(sessionID))
	if os.IsNotExist(err) {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return err
}

func (s *LocalStore) path(sessionID string) string {
	return filepath.Join(s.sessions, sanitizeID(sessionID)+".json")
}

// sanitizeID keeps session ids filesystem-safe
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
