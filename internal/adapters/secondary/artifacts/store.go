package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"disease-diagnosis-service/internal/core/domain"
	output "disease-diagnosis-service/internal/core/ports/output"
)

type fileStore struct {
	baseDir string
}

// NewFileStore returns an ArtifactStore reading artifacts from the local
// filesystem. Relative paths are resolved against baseDir.
func NewFileStore(baseDir string) output.ArtifactStore {
	return &fileStore{baseDir: baseDir}
}

func (s *fileStore) Load(ctx context.Context, path string) (*domain.LoadedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full := s.resolve(path)
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, full)
		}
		return nil, fmt.Errorf("read artifact %s: %w", full, err)
	}

	artifact, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", full, err)
	}

	sum := sha256.Sum256(data)
	return &domain.LoadedArtifact{
		Artifact: artifact,
		Path:     full,
		Checksum: hex.EncodeToString(sum[:]),
		Size:     int64(len(data)),
	}, nil
}

func (s *fileStore) resolve(path string) string {
	if filepath.IsAbs(path) || s.baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(s.baseDir, path)
}
