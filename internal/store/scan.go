package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// hidden reports whether a directory entry is excluded from scans. The
// predicate applies uniformly to files and subdirectories.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// OpenTasks scans every open list.
func (s *Store) OpenTasks() []Task {
	return s.Scan(s.lists...)
}

// Scan walks the given state directories recursively and returns every
// parseable task found, tagged with the state it was discovered under.
// Hidden entries are skipped entirely; a malformed file is logged and
// skipped without aborting the scan.
func (s *Store) Scan(lists ...string) []Task {
	var tasks []Task
	for _, list := range lists {
		root := filepath.Join(s.Root, list)
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d == nil {
				return nil
			}
			if path != root && hidden(d.Name()) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				s.log.Warn("skipping unreadable task file", "path", path, "err", err)
				return nil
			}
			t, err := ParseTask(content)
			if err != nil {
				var perr *ParseError
				if errors.As(err, &perr) {
					perr.Path = path
				}
				s.log.Warn("skipping malformed task file", "err", err)
				return nil
			}
			t.List = list
			t.Path = path
			tasks = append(tasks, t)
			return nil
		})
	}
	return tasks
}
