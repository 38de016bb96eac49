// Command sitectl serves the site API and runs the content tooling: search,
// index rebuilds, lint passes and the MCP search server.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
