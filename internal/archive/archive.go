// Package archive consolidates loose files into date-keyed zip bundles.
package archive

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"time"

	"github.com/Lakarti/archive-and-delete/internal/fs"
	"github.com/Lakarti/archive-and-delete/internal/logging"
)

var ErrSourceChanged = errors.New("source changed during archiving")

type Consolidator struct {
	fs  fs.FS
	log logging.Logger
	loc *time.Location
}

func New(filesystem fs.FS, log logging.Logger) *Consolidator {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Consolidator{
		fs:  filesystem,
		log: log,
		loc: time.Local,
	}
}

// WithLocation sets the time zone used to derive bundle dates.
func (c *Consolidator) WithLocation(loc *time.Location) *Consolidator {
	c.loc = loc
	return c
}

type Archived struct {
	File   string // source path, now deleted
	Bundle string // bundle file name inside the root
}

// Report lists what a consolidation did, including partial work before an error.
type Report struct {
	Dir      string
	Archived []Archived
	Skipped  int
}

// Consolidate walks dir recursively and moves every file whose name ends in
// ext (case-insensitive) into dir/<mtime date>.zip under its base name. The
// first error stops the walk; a file is only deleted after its bundle was written.
func (c *Consolidator) Consolidate(ctx context.Context, dir, ext string) (Report, error) {
	rep := Report{Dir: dir}

	err := c.fs.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !matchesExt(d.Name(), ext) {
			rep.Skipped++
			return nil
		}

		a, err := c.archiveOne(dir, path)
		if err != nil {
			return err
		}
		rep.Archived = append(rep.Archived, a)
		return nil
	})
	if err != nil {
		return rep, fmt.Errorf("creating archives in %s: %w", dir, err)
	}
	return rep, nil
}

func (c *Consolidator) archiveOne(root, path string) (Archived, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return Archived{}, fmt.Errorf("stat %s: %w", path, err)
	}
	cand := candidateFrom(info)

	bundle := BundleName(cand.ModTime.In(c.loc))
	bundlePath := filepath.Join(root, bundle)

	src, err := c.fs.Open(path)
	if err != nil {
		return Archived{}, fmt.Errorf("opening %s: %w", path, err)
	}
	err = appendToBundle(c.fs, bundlePath, cand, src)
	_ = src.Close()
	if err != nil {
		return Archived{}, fmt.Errorf("archiving %s into %s: %w", path, bundle, err)
	}
	c.log.Info("file added to archive", "file", cand.Name, "archive", bundle)

	now, err := c.fs.Stat(path)
	if err != nil {
		return Archived{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if fs.Changed(info, now) {
		return Archived{}, fmt.Errorf("%s: %w", path, ErrSourceChanged)
	}

	if err := c.fs.Remove(path); err != nil {
		return Archived{}, fmt.Errorf("removing %s: %w", path, err)
	}
	c.log.Info("original file deleted", "file", cand.Name)

	return Archived{File: path, Bundle: bundle}, nil
}
