// Package assets resolves logical asset names to content-hashed
// filenames using a manifest.json produced by the frontend build.
package assets

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// AssetResolver maps logical asset names (css/styles.css) to hashed
// names (css/styles.ab12cd34.css) via manifest.json.
type AssetResolver struct {
	mu       sync.RWMutex
	manifest map[string]string
	diskPath string
	fsys     fs.FS
	fsPath   string
	logger   *slog.Logger
}

// NewAssetResolverFromDisk creates a resolver reading the manifest from
// the local filesystem. A missing manifest is not an error; logical
// names pass through unchanged.
func NewAssetResolverFromDisk(manifestPath string) (*AssetResolver, error) {
	ar := &AssetResolver{manifest: map[string]string{}, diskPath: manifestPath, logger: slog.Default()}
	return ar, ar.Reload()
}

// NewAssetResolverFromFS creates a resolver reading the manifest from an
// fs.FS implementation, typically the embedded static tree.
func NewAssetResolverFromFS(fsys fs.FS, manifestPath string) (*AssetResolver, error) {
	ar := &AssetResolver{manifest: map[string]string{}, fsys: fsys, fsPath: manifestPath, logger: slog.Default()}
	return ar, ar.Reload()
}

// Reload re-reads the manifest from its source.
func (ar *AssetResolver) Reload() error {
	data, err := ar.read()
	if err != nil {
		return err
	}

	manifest := map[string]string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &manifest); err != nil {
			ar.logger.Error("failed to parse asset manifest", slog.Any("error", err))
			manifest = map[string]string{}
		}
	}

	ar.mu.Lock()
	ar.manifest = manifest
	ar.mu.Unlock()
	return nil
}

func (ar *AssetResolver) read() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case ar.diskPath != "":
		data, err = os.ReadFile(ar.diskPath)
	case ar.fsys != nil:
		data, err = fs.ReadFile(ar.fsys, ar.fsPath)
	default:
		return nil, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Resolve returns the static URL for a logical asset name, falling back
// to the logical name when it is not in the manifest.
func (ar *AssetResolver) Resolve(logicalName string) string {
	if ar == nil {
		return "/static/" + logicalName
	}
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	if hashed, ok := ar.manifest[logicalName]; ok {
		return "/static/" + hashed
	}
	return "/static/" + logicalName
}
