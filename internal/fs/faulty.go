package fs

import iofs "io/fs"

// Faulty wraps an FS and lets Fail veto individual operations. It is used to
// exercise error paths; a nil Fail passes everything through.
type Faulty struct {
	FS
	Fail func(op, path string) error
}

func (f *Faulty) check(op, path string) error {
	if f.Fail == nil {
		return nil
	}
	return f.Fail(op, path)
}

func (f *Faulty) Stat(path string) (FileInfo, error) {
	if err := f.check("stat", path); err != nil {
		return FileInfo{}, err
	}
	return f.FS.Stat(path)
}

func (f *Faulty) ReadDir(path string) ([]iofs.DirEntry, error) {
	if err := f.check("readdir", path); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(path)
}

func (f *Faulty) WalkDir(root string, fn iofs.WalkDirFunc) error {
	return f.FS.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err == nil {
			err = f.check("walk", path)
		}
		return fn(path, d, err)
	})
}

func (f *Faulty) Open(path string) (File, error) {
	if err := f.check("open", path); err != nil {
		return nil, err
	}
	return f.FS.Open(path)
}

func (f *Faulty) CreateTemp(dir, pattern string) (TempFile, error) {
	if err := f.check("createtemp", dir); err != nil {
		return nil, err
	}
	return f.FS.CreateTemp(dir, pattern)
}

func (f *Faulty) Rename(oldPath, newPath string) error {
	if err := f.check("rename", newPath); err != nil {
		return err
	}
	return f.FS.Rename(oldPath, newPath)
}

func (f *Faulty) Remove(path string) error {
	if err := f.check("remove", path); err != nil {
		return err
	}
	return f.FS.Remove(path)
}

func (f *Faulty) RemoveAll(path string) error {
	if err := f.check("removeall", path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}
