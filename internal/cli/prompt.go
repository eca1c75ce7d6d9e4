package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tankywoo/todo-cli/internal/store"
)

// promptAddOptions reads task fields line by line for interactive add.
// Blank or unparsable answers keep the field defaults.
func promptAddOptions(r io.Reader, w io.Writer) (store.AddOptions, error) {
	opts := store.AddOptions{Priority: 1}
	prompts := []struct {
		label string
		set   func(string)
	}{
		{"title: ", func(v string) { opts.Title = v }},
		{"project: ", func(v string) { opts.Project = v }},
		{"priority (1,2,3): ", func(v string) {
			if n, err := strconv.Atoi(v); err == nil {
				opts.Priority = n
			}
		}},
		{"expire [" + store.DateFormat + "]: ", func(v string) { opts.Expire = v }},
	}

	sc := bufio.NewScanner(r)
	for _, p := range prompts {
		fmt.Fprint(w, p.label)
		if !sc.Scan() {
			break
		}
		p.set(strings.TrimSpace(sc.Text()))
	}
	return opts, sc.Err()
}
