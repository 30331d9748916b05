package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChanged(t *testing.T) {
	base := FileInfo{Size: 10, MTime: time.Unix(1000, 0), Inode: 7}

	tests := []struct {
		name string
		now  FileInfo
		want bool
	}{
		{"identical", base, false},
		{"size", FileInfo{Size: 11, MTime: base.MTime, Inode: 7}, true},
		{"mtime", FileInfo{Size: 10, MTime: base.MTime.Add(time.Second), Inode: 7}, true},
		{"inode", FileInfo{Size: 10, MTime: base.MTime, Inode: 8}, true},
		{"unknown inode", FileInfo{Size: 10, MTime: base.MTime}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Changed(base, tt.now); got != tt.want {
				t.Errorf("Changed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOSFSStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	info, err := New().Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size != 5 || !info.MTime.Equal(mtime) || info.IsDir {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestFaultyVetoesOperation(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	f := &Faulty{FS: New(), Fail: func(op, path string) error {
		if op == "removeall" {
			return boom
		}
		return nil
	}}

	if _, err := f.ReadDir(dir); err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if err := f.RemoveAll(dir); !errors.Is(err, boom) {
		t.Fatalf("RemoveAll err = %v, want boom", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory removed despite veto: %v", err)
	}
}
