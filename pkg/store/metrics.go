package store

import (
	"io/fs"
	"path/filepath"
)

// DiskUsage returns the best-effort on-disk size of the local store in
// bytes. Zero when the store is not opened.
func DiskUsage() uint64 {
	if db == nil || dbPath == "" {
		return 0
	}
	var total uint64
	_ = filepath.WalkDir(dbPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total += uint64(fi.Size())
		}
		return nil
	})
	return total
}
