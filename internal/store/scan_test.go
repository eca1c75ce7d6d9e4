package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), log.New(io.Discard))
}

func writeTaskFixture(t *testing.T, root, list, name, id string) string {
	t.Helper()
	dir := filepath.Join(root, list)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\ntitle: " + name + "\nproject: p\npriority: 1\ncreate: 2024-01-02 09:30\nexpire:\nid: " + id + "\n---\n\n"
	path := filepath.Join(dir, id+".txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanTagsListByStateDirectory(t *testing.T) {
	s := newTestStore(t)
	writeTaskFixture(t, s.Root, ListTodo, "one", "aaaaaa")
	writeTaskFixture(t, s.Root, ListToday, "two", "bbbbbb")

	tasks := s.OpenTasks()
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	lists := map[string]string{}
	for _, task := range tasks {
		lists[task.ID] = task.List
	}
	if lists["aaaaaa"] != ListTodo {
		t.Errorf("task aaaaaa: list %q, want %q", lists["aaaaaa"], ListTodo)
	}
	if lists["bbbbbb"] != ListToday {
		t.Errorf("task bbbbbb: list %q, want %q", lists["bbbbbb"], ListToday)
	}
}

func TestScanRecursesAndKeepsTopLevelListTag(t *testing.T) {
	s := newTestStore(t)
	nested := filepath.Join(ListTodo, "someday")
	writeTaskFixture(t, s.Root, nested, "nested", "cccccc")

	tasks := s.OpenTasks()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].List != ListTodo {
		t.Errorf("nested task list: got %q, want %q", tasks[0].List, ListTodo)
	}
}

func TestScanSkipsHiddenEntries(t *testing.T) {
	s := newTestStore(t)
	todoDir := filepath.Join(s.Root, ListTodo)
	if err := os.MkdirAll(filepath.Join(todoDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	// hidden file in todo/, valid task inside todo/.git/
	hiddenTask := "---\ntitle: ghost\nid: dddddd\n---\n"
	if err := os.WriteFile(filepath.Join(todoDir, ".hidden.txt"), []byte(hiddenTask), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(todoDir, ".git", "eeeeee.txt"), []byte(hiddenTask), 0o644); err != nil {
		t.Fatal(err)
	}
	writeTaskFixture(t, s.Root, ListTodo, "visible", "ffffff")

	tasks := s.OpenTasks()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].ID != "ffffff" {
		t.Errorf("got task %q, want ffffff", tasks[0].ID)
	}
}

func TestScanSkipsMalformedFiles(t *testing.T) {
	s := newTestStore(t)
	writeTaskFixture(t, s.Root, ListTodo, "good", "gggggg")
	bad := filepath.Join(s.Root, ListTodo, "broken.txt")
	if err := os.WriteFile(bad, []byte("no metadata block here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tasks := s.OpenTasks()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].ID != "gggggg" {
		t.Errorf("got task %q, want gggggg", tasks[0].ID)
	}
}

func TestScanMissingStateDirectory(t *testing.T) {
	s := newTestStore(t)
	if tasks := s.OpenTasks(); len(tasks) != 0 {
		t.Fatalf("got %d tasks from empty root, want 0", len(tasks))
	}
}
