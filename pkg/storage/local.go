package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/siddharthaBojanki/greenCart/config"
)

// localDisk stores files under a root directory on the local filesystem.
type localDisk struct {
	root    string
	baseURL string
}

func newLocalDisk() *localDisk {
	return &localDisk{
		root:    config.StorageLocalRoot(),
		baseURL: strings.TrimRight(config.StorageURL(), "/"),
	}
}

// fullPath resolves storagePath under the root, rejecting traversal out of
// it.
func (d *localDisk) fullPath(storagePath string) string {
	clean := filepath.Clean("/" + storagePath)
	return filepath.Join(d.root, clean)
}

func (d *localDisk) Put(storagePath string, content []byte) error {
	full := d.fullPath(storagePath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, content, 0o644)
}

func (d *localDisk) PutStream(storagePath string, r io.Reader) error {
	full := d.fullPath(storagePath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return err
	}
	return f.Close()
}

func (d *localDisk) Get(storagePath string) ([]byte, error) {
	return os.ReadFile(d.fullPath(storagePath))
}

func (d *localDisk) Exists(storagePath string) bool {
	info, err := os.Stat(d.fullPath(storagePath))
	return err == nil && !info.IsDir()
}

func (d *localDisk) Delete(storagePath string) error {
	err := os.Remove(d.fullPath(storagePath))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (d *localDisk) URL(storagePath string) string {
	return d.baseURL + "/" + strings.TrimLeft(storagePath, "/")
}
