package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateFormat is the fixed timestamp layout used in task metadata.
const DateFormat = "2006-01-02 15:04"

// ParseError reports a task file whose content does not match the
// delimited metadata/description structure.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "parse: " + e.Reason
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

// flexString decodes a YAML scalar keeping its literal text form. A
// value scanned as a bare integer stays a decimal string, null becomes
// the empty string.
type flexString string

func (s *flexString) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*s = ""
		return nil
	}
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected scalar, got %s", value.Tag)
	}
	*s = flexString(value.Value)
	return nil
}

type taskMeta struct {
	ID       flexString `yaml:"id"`
	Title    flexString `yaml:"title"`
	Project  flexString `yaml:"project"`
	Priority flexString `yaml:"priority"`
	Create   flexString `yaml:"create"`
	Expire   flexString `yaml:"expire"`
}

// ParseTask turns the raw content of one task file into a Task. The
// metadata block is bounded by two lines consisting solely of "---";
// everything after the closing line, leading blank lines included, is
// the description.
func ParseTask(content []byte) (Task, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	start, end := -1, -1
	for i, line := range lines {
		if line != "---" {
			continue
		}
		if start == -1 {
			start = i
			continue
		}
		end = i
		break
	}
	if start == -1 || end == -1 {
		return Task{}, &ParseError{Reason: "missing metadata delimiters"}
	}

	var meta taskMeta
	block := strings.Join(lines[start+1:end], "\n")
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return Task{}, &ParseError{Reason: "invalid metadata: " + err.Error()}
	}

	priority := 1
	if v := strings.TrimSpace(string(meta.Priority)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			priority = n
		}
	}

	var expire *time.Time
	if v := strings.TrimSpace(string(meta.Expire)); v != "" {
		t, err := time.Parse(DateFormat, v)
		if err != nil {
			return Task{}, &ParseError{Reason: fmt.Sprintf("invalid expire %q", v)}
		}
		expire = &t
	}

	return Task{
		ID:          string(meta.ID),
		Title:       string(meta.Title),
		Project:     string(meta.Project),
		Priority:    priority,
		Create:      string(meta.Create),
		Expire:      expire,
		Description: strings.Join(lines[end+1:], "\n"),
	}, nil
}
