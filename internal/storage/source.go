// Package storage loads and stores the mosque collection the map shows.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"mosque/internal/models"
)

// Source yields the full, static collection of places.
type Source interface {
	Load(ctx context.Context) ([]models.Mosque, error)
}

// FileSource reads a JSON array of mosques from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Load(_ context.Context) ([]models.Mosque, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer file.Close()

	mosques, err := decodeMosques(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	log.Printf("Loaded %d mosques from %s", len(mosques), f.Path)
	return mosques, nil
}

func decodeMosques(r io.Reader) ([]models.Mosque, error) {
	var mosques []models.Mosque
	if err := json.NewDecoder(r).Decode(&mosques); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return mosques, nil
}
