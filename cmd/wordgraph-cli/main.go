// Package main implements wordgraph-cli, a small command-line tool
// for poking at a wordgraph buffer from the shell: load an HCL config,
// build an empty engine from it, and print its stats — useful for
// sanity-checking a config file before wiring it into a service.
package main

import (
	"fmt"
	"os"

	"github.com/lvlath-labs/wordgraph/adjacency"
	"github.com/lvlath-labs/wordgraph/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "stats":
		statsCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Println(versionString())
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`wordgraph-cli - inspect a wordgraph engine configuration

USAGE:
    wordgraph-cli <command> [arguments]

COMMANDS:
    stats <config.hcl>   Build an empty engine from an HCL config and print its Stats
    version              Show module version information
    help                 Show this help message
`)
}

func statsCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: wordgraph-cli stats <config.hcl>")
		os.Exit(1)
	}

	cfg, err := config.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordgraph-cli: %v\n", err)
		os.Exit(1)
	}

	list, err := adjacency.New(cfg.Options()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordgraph-cli: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(list.Stats())
}
