package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"

	"github.com/Lakarti/archive-and-delete/internal/fs"
)

// appendToBundle adds src under c.Name to the zip at bundlePath, creating it
// if absent. An existing entry with the same name is replaced. The bundle is
// rebuilt in a temp file next to it and renamed into place, so readers only
// ever see the old or the new bundle.
func appendToBundle(fsys fs.FS, bundlePath string, c Candidate, src io.Reader) (err error) {
	dir := filepath.Dir(bundlePath)
	tmp, err := fsys.CreateTemp(dir, "."+filepath.Base(bundlePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp bundle: %w", err)
	}
	tmpName := tmp.Name()

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = fsys.Remove(tmpName)
	}()

	zw := zip.NewWriter(tmp)

	if err := copyExisting(fsys, bundlePath, c.Name, zw); err != nil {
		return err
	}

	hdr := &zip.FileHeader{
		Name:     c.Name,
		Method:   zip.Deflate,
		Modified: c.ModTime,
	}
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", c.Name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("writing %s: %w", c.Name, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing bundle: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("setting bundle mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing bundle: %w", err)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing bundle: %w", err)
	}

	if err := fsys.Rename(tmpName, bundlePath); err != nil {
		return fmt.Errorf("finalizing bundle: %w", err)
	}
	return nil
}

// copyExisting copies every entry of the bundle at path, except skip, into zw
// without recompressing. A missing bundle copies nothing.
func copyExisting(fsys fs.FS, path, skip string, zw *zip.Writer) error {
	f, err := fsys.Open(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening bundle: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat bundle: %w", err)
	}

	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		return fmt.Errorf("reading bundle %s: %w", filepath.Base(path), err)
	}

	for _, zf := range zr.File {
		if zf.Name == skip {
			continue
		}
		if err := zw.Copy(zf); err != nil {
			return fmt.Errorf("copying %s: %w", zf.Name, err)
		}
	}
	return nil
}
