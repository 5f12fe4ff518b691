package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Ensure DatasetService implements the interface.
var _ driving.DatasetService = (*DatasetService)(nil)

// versionFile names the file holding a data folder's version.
const versionFile = "VERSION"

// DatasetService loads records from a data directory laid out as
// <dataDir>/<source>[/<folder>].
type DatasetService struct {
	dataDir string
	loaders driven.LoaderRegistry
}

// NewDatasetService creates a dataset service reading from dataDir.
func NewDatasetService(dataDir string, loaders driven.LoaderRegistry) *DatasetService {
	return &DatasetService{
		dataDir: dataDir,
		loaders: loaders,
	}
}

// Sources returns the registered source names, sorted.
func (s *DatasetService) Sources() []string {
	return s.loaders.Names()
}

// DataDir returns the configured data directory.
func (s *DatasetService) DataDir() string {
	return s.dataDir
}

// Load reads the records of source, optionally from one of its folders.
func (s *DatasetService) Load(ctx context.Context, source string, opts domain.LoadOptions) ([]domain.Record, error) {
	loader, err := s.loaders.Get(source)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", source, err)
	}

	if s.dataDir == "" {
		return nil, domain.ErrNoDataDir
	}

	if opts.Folder != "" && !filepath.IsLocal(opts.Folder) {
		return nil, fmt.Errorf("%w: folder %q must be inside the source directory", domain.ErrInvalidInput, opts.Folder)
	}

	dir := filepath.Join(s.dataDir, source, opts.Folder)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("load %q: %w", source, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	logger.Debug("loading %s from %s", source, dir)

	records, err := loader.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", source, err)
	}

	logger.Info("loaded %d %s records", len(records), source)
	return records, nil
}

// Versions describes every non-hidden folder of the data directory.
func (s *DatasetService) Versions(ctx context.Context) ([]domain.DataVersion, error) {
	if s.dataDir == "" {
		return nil, domain.ErrNoDataDir
	}

	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var versions []domain.DataVersion
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err := describeFolder(filepath.Join(s.dataDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func describeFolder(dir string) (domain.DataVersion, error) {
	v := domain.DataVersion{Name: filepath.Base(dir)}

	if raw, err := os.ReadFile(filepath.Join(dir, versionFile)); err == nil {
		v.Version = strings.TrimSpace(string(raw))
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isHidden(d.Name()) && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		v.Files++
		if info.ModTime().After(v.ModifiedAt) {
			v.ModifiedAt = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return v, fmt.Errorf("scan %s: %w", dir, err)
	}
	return v, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
