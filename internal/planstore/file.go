package planstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mapleplan/mapleplan/internal/domain"
)

// FileStore keeps records newest-first in a single JSON file. Good enough
// for single-instance deployments; use the Redis store when more than one
// server shares plans.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileEnvelope struct {
	Plans []domain.PlanRecord `json:"plans"`
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, "plan-store.json")}, nil
}

func (s *FileStore) Save(_ context.Context, record domain.PlanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read()
	if err != nil {
		return err
	}
	env.Plans = append([]domain.PlanRecord{record}, env.Plans...)
	if len(env.Plans) > MaxRecords {
		env.Plans = env.Plans[:MaxRecords]
	}
	return s.write(env)
}

func (s *FileStore) GetByID(_ context.Context, id string) (domain.PlanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read()
	if err != nil {
		return domain.PlanRecord{}, err
	}
	for _, record := range env.Plans {
		if record.ID == id {
			return record, nil
		}
	}
	return domain.PlanRecord{}, ErrNotFound
}

func (s *FileStore) GetLatestByClientID(_ context.Context, clientID string) (domain.PlanRecord, error) {
	if clientID == "" {
		return domain.PlanRecord{}, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read()
	if err != nil {
		return domain.PlanRecord{}, err
	}
	// Records are newest-first, so the first match is the latest.
	for _, record := range env.Plans {
		if record.ClientID == clientID {
			return record, nil
		}
	}
	return domain.PlanRecord{}, ErrNotFound
}

func (s *FileStore) read() (fileEnvelope, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return fileEnvelope{}, nil
	}
	if err != nil {
		return fileEnvelope{}, fmt.Errorf("failed to read plan store: %w", err)
	}
	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fileEnvelope{}, fmt.Errorf("failed to decode plan store: %w", err)
	}
	return env, nil
}

func (s *FileStore) write(env fileEnvelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plan store: %w", err)
	}
	return os.Rename(tmp, s.path)
}
