// Package storage stores product images on a pluggable disk.
//
// Two drivers are available:
//   - "local" — local filesystem (default; served under /storage)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once in the server bootstrap:
//
//	storage.Connect()
//	url, err := storage.Default().PutImage("products", name, data)
package storage

import (
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/siddharthaBojanki/greenCart/config"
	"github.com/siddharthaBojanki/greenCart/pkg/logger"
	"github.com/siddharthaBojanki/greenCart/pkg/reqid"
)

// Disk is the image storage driver interface.
type Disk interface {
	// Put writes content to storagePath, creating parents as needed.
	Put(storagePath string, content []byte) error

	// PutStream writes from r to storagePath.
	PutStream(storagePath string, r io.Reader) error

	// Get returns the full content of the file at storagePath.
	Get(storagePath string) ([]byte, error)

	// Exists reports whether a file exists at storagePath.
	Exists(storagePath string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(storagePath string) error

	// URL returns the public URL for storagePath.
	URL(storagePath string) string
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. The local disk is always available;
// the S3 disk boots only when a bucket is configured.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		defaultDisk = "local"
	}
}

// Use returns the named disk ("local" or "s3"); unknown names fall back to
// local.
func Use(name string) Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()

	if d, ok := disks[name]; ok {
		return d
	}
	return disks["local"]
}

// Default returns the configured default disk.
func Default() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// PutImage stores an uploaded image under dir with a collision-safe name
// derived from filename, returning its public URL.
func PutImage(d Disk, dir, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		return "", fmt.Errorf("storage: unsupported image type %q", ext)
	}

	key := path.Join(dir, reqid.New()+ext)
	if err := d.PutStream(key, r); err != nil {
		return "", err
	}
	return d.URL(key), nil
}
