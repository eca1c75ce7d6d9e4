package main

import (
	"os"

	"github.com/tankywoo/todo-cli/internal/cli"
)

func main() {
	code := cli.Run(os.Args[1:])
	os.Exit(code)
}
