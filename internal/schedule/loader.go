package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/epistep/internal/errors"
)

// Load reads a Schedule from a JSON file
func Load(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}

	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal schedule: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validate schedule: %w", err)
	}

	return &s, nil
}

// Save writes the Schedule to a JSON file
func (s *Schedule) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrap(errors.ErrCodeDirectoryFailed, fmt.Sprintf("create directory: %s", dir), err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.NewFileWriteError(path, err)
	}

	return nil
}
