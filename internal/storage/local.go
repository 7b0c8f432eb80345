package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploads under a directory on disk, one file per key.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) RemovePrefix(ctx context.Context, prefix string) (int, error) {
	clean := strings.Trim(prefix, "/")
	if clean == "" {
		return 0, fmt.Errorf("refusing to remove an empty prefix")
	}

	root, err := filepath.Abs(s.root)
	if err != nil {
		return 0, err
	}
	target := filepath.Join(root, filepath.FromSlash(clean))
	if !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return 0, fmt.Errorf("prefix %q escapes upload dir", prefix)
	}

	count := 0
	err = filepath.WalkDir(target, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return count, os.RemoveAll(target)
}
