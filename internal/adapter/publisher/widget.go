package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thisisprabha/networth/internal/domain"
)

// WidgetFile writes the latest display state to a JSON file for home-screen widgets
type WidgetFile struct {
	path string
}

func NewWidgetFile(path string) *WidgetFile {
	return &WidgetFile{path: path}
}

// PublishDisplayState replaces the file atomically
func (w *WidgetFile) PublishDisplayState(ctx context.Context, state domain.DisplayState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode display state: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create widget directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write widget state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("failed to replace widget state: %w", err)
	}
	return nil
}

// ReadWidgetFile returns the display state last written to path
func ReadWidgetFile(path string) (domain.DisplayState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.DisplayState{}, fmt.Errorf("failed to read widget state: %w", err)
	}
	var state domain.DisplayState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.DisplayState{}, fmt.Errorf("failed to decode widget state: %w", err)
	}
	return state, nil
}
