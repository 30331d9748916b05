package archive

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/Lakarti/archive-and-delete/internal/fs"
)

// Candidate describes a single file picked up for archiving.
type Candidate struct {
	Path    string
	Name    string
	ModTime time.Time
	Size    int64
}

func candidateFrom(info fs.FileInfo) Candidate {
	return Candidate{
		Path:    info.Path,
		Name:    filepath.Base(info.Path),
		ModTime: info.MTime,
		Size:    info.Size,
	}
}

// BundleName is the archive a file modified at t belongs to.
func BundleName(t time.Time) string {
	return t.Format("2006-01-02") + ".zip"
}

func matchesExt(name, ext string) bool {
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext))
}
