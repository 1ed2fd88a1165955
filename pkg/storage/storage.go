package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewStorage)

const (
	StorageMinio = "minio"
)

// Storage holds the object-store configuration.
type Storage struct {
	Provider  string `mapstructure:"provider"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseTLS    bool   `mapstructure:"useTLS"`
	BasePath  string `mapstructure:"basePath"`
}

// NewStorage creates a text store for the configured provider.
func NewStorage(s *Storage) (TextStore, error) {
	switch s.Provider {
	case StorageMinio:
		return newMinio(s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return objectName
	}
	return strings.TrimPrefix(filepath.ToSlash(filepath.Join(basePath, objectName)), "/")
}
