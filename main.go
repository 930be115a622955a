package main

import "github.com/integralist/fastly-mutate/internal/cmd"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cmd.Execute(version)
}
