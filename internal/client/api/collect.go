package api

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/projectfiles/internal/filekind"
)

// LocalFile is a file on disk and the relative name it is uploaded under.
type LocalFile struct {
	Path string
	Name string
	Size int64
}

// CollectFiles expands paths into the files an upload should send.
//
// A directory contributes every regular file below it, named relative to
// the directory's parent so the folder itself stays part of the name, the
// same way a browser folder picker reports it. Excluded directories are not
// descended into. Excluded files are returned separately.
func CollectFiles(paths ...string) (files []LocalFile, skipped []string, err error) {
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, nil, err
		}

		if !info.IsDir() {
			name := filepath.Base(root)
			if filekind.ShouldExclude(name) {
				skipped = append(skipped, name)
				continue
			}
			files = append(files, LocalFile{Path: root, Name: name, Size: info.Size()})
			continue
		}

		base := filepath.Dir(filepath.Clean(root))
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(base, p)
			if err != nil {
				return err
			}
			name := filepath.ToSlash(rel)

			if d.IsDir() {
				if p != root && filekind.IsExcludedDir(d.Name()) {
					skipped = append(skipped, name+"/")
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if filekind.ShouldExclude(name) {
				skipped = append(skipped, name)
				return nil
			}

			fi, err := d.Info()
			if err != nil {
				return err
			}
			files = append(files, LocalFile{Path: p, Name: name, Size: fi.Size()})
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return files, skipped, nil
}
