package factory

import (
	"fmt"

	"go-landing-scout/internal/analyzer"
	"go-landing-scout/internal/config"
	"go-landing-scout/internal/storage"
)

// StorageType selects how remote images are downloaded
type StorageType string

const (
	// HTTPStorage downloads every URL with a plain GET
	HTTPStorage StorageType = "http"
	// AzureStorage downloads blobs with shared key credentials
	AzureStorage StorageType = "azure"
	// RoutedStorage sends blob URLs to Azure and everything else over HTTP
	RoutedStorage StorageType = "routed"
)

// AnalyzerFactory creates landing analyzers
type AnalyzerFactory interface {
	CreateAnalyzer() (analyzer.ImageAnalyzer, error)
}

// StorageFactory creates fetchers and the output slot
type StorageFactory interface {
	CreateFetcher(storageType StorageType) (storage.ImageFetcher, error)
	CreateOutputStore() (storage.OutputStore, error)
}

// analyzerFactory implements AnalyzerFactory
type analyzerFactory struct {
	cfg *config.Config
}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory(cfg *config.Config) AnalyzerFactory {
	return &analyzerFactory{cfg: cfg}
}

// CreateAnalyzer builds an analyzer using the configured mass and heatmap mode
func (f *analyzerFactory) CreateAnalyzer() (analyzer.ImageAnalyzer, error) {
	opts := analyzer.DefaultOptions().
		WithLanderMass(f.cfg.LanderMass).
		WithHeatmapMode(f.cfg.HeatmapMode)
	return analyzer.NewImageAnalyzer(opts)
}

// storageFactory implements StorageFactory
type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateFetcher creates a fetcher of the requested type
func (f *storageFactory) CreateFetcher(storageType StorageType) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return f.httpFetcher(), nil
	case AzureStorage:
		return f.azureFetcher()
	case RoutedStorage:
		if !f.cfg.AzureEnabled() {
			return f.httpFetcher(), nil
		}
		blob, err := f.azureFetcher()
		if err != nil {
			return nil, err
		}
		return storage.NewRoutingFetcher(f.httpFetcher(), blob), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// CreateOutputStore opens the single processed-image slot
func (f *storageFactory) CreateOutputStore() (storage.OutputStore, error) {
	return storage.NewFileOutputStore(f.cfg.OutputPath)
}

func (f *storageFactory) httpFetcher() *storage.HTTPImageFetcher {
	return storage.NewHTTPImageFetcher(f.cfg.ImageFetchTimeout, f.cfg.MaxRequestBodySize)
}

func (f *storageFactory) azureFetcher() (*storage.AzureImageFetcher, error) {
	if !f.cfg.AzureEnabled() {
		return nil, fmt.Errorf("azure storage requires AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY")
	}
	return storage.NewAzureImageFetcher(f.cfg.AzureAccountName, f.cfg.AzureAccountKey, f.cfg.MaxRequestBodySize)
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	AnalyzerFactory AnalyzerFactory
	StorageFactory  StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config) *ComponentFactory {
	return &ComponentFactory{
		AnalyzerFactory: NewAnalyzerFactory(cfg),
		StorageFactory:  NewStorageFactory(cfg),
	}
}
