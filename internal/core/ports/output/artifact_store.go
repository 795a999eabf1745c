package ports

import (
	"context"

	"disease-diagnosis-service/internal/core/domain"
)

// ArtifactStore resolves a path to a serialized artifact and deserializes it.
//
// A missing path yields domain.ErrArtifactNotFound; a blob that exists but
// cannot be decoded yields domain.ErrArtifactCorrupt.
type ArtifactStore interface {
	Load(ctx context.Context, path string) (*domain.LoadedArtifact, error)
}
