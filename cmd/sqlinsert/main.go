package main

import (
	"os"

	"github.com/Infisical/sql-insert-parser/cmd"
)

var Version = "dev"

func main() {
	os.Exit(cmd.RunApp(Version, os.Args[1:], os.Stdout, os.Stderr))
}
