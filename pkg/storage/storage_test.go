package storage

import (
	"bytes"
	"strings"
	"testing"
)

func testLocalDisk(t *testing.T) *localDisk {
	t.Helper()
	return &localDisk{root: t.TempDir(), baseURL: "http://localhost:8080/storage"}
}

func TestLocalPutGetDelete(t *testing.T) {
	d := testLocalDisk(t)

	if err := d.Put("products/a.png", []byte("png-bytes")); err != nil {
		t.Fatal(err)
	}
	if !d.Exists("products/a.png") {
		t.Error("file should exist after Put")
	}

	got, err := d.Get("products/a.png")
	if err != nil || string(got) != "png-bytes" {
		t.Errorf("Get = %q, %v", got, err)
	}

	if err := d.Delete("products/a.png"); err != nil {
		t.Fatal(err)
	}
	if d.Exists("products/a.png") {
		t.Error("file should be gone after Delete")
	}
	// deleting again is not an error
	if err := d.Delete("products/a.png"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestLocalPutStream(t *testing.T) {
	d := testLocalDisk(t)

	if err := d.PutStream("products/b.jpg", bytes.NewReader([]byte("jpeg"))); err != nil {
		t.Fatal(err)
	}
	got, err := d.Get("products/b.jpg")
	if err != nil || string(got) != "jpeg" {
		t.Errorf("Get = %q, %v", got, err)
	}
}

func TestLocalPathTraversalContained(t *testing.T) {
	d := testLocalDisk(t)

	if err := d.Put("../../escape.txt", []byte("x")); err != nil {
		t.Fatal(err)
	}
	// the traversal is cleaned into the root, never above it
	if !d.Exists("escape.txt") {
		t.Error("traversal path was not contained under the root")
	}
}

func TestLocalURL(t *testing.T) {
	d := testLocalDisk(t)
	if got := d.URL("products/a.png"); got != "http://localhost:8080/storage/products/a.png" {
		t.Errorf("URL = %q", got)
	}
}

func TestPutImageRejectsUnknownExtension(t *testing.T) {
	d := testLocalDisk(t)

	if _, err := PutImage(d, "products", "evil.exe", strings.NewReader("mz")); err == nil {
		t.Error("non-image extension accepted")
	}

	url, err := PutImage(d, "products", "photo.JPG", strings.NewReader("jpeg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("stored URL %q should keep a lowered image extension", url)
	}
}
