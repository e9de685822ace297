package ports

import (
	"context"

	"sdkmeta/internal/types"
)

// ManifestLocatorPort finds the single metadata document of an SDK tree.
type ManifestLocatorPort interface {
	FindManifest(root string) (string, error)
}

// ManifestLoaderPort parses a metadata document into the SDK model.
type ManifestLoaderPort interface {
	LoadSDK(ctx context.Context, root string, manifestPath string) (types.SDK, error)
}
