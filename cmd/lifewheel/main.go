package main

import (
	"fmt"
	"os"
)

const usageText = `lifewheel walks you through a life balance wheel.

Usage:
  lifewheel [command] [flags]

Commands:
  ui       run the wizard (default)
  config   print configuration (effective or defaults)
  version  print the build version
  help     show help

UI flags:
  --config <path>                   settings file (default ~/.lifewheel/config.toml)
  --micro-action strict|relaxed     how much the action step asks for

Config flags:
  --default                         print default values
  --format json|toml                output format

Examples:
  lifewheel
  lifewheel ui --micro-action relaxed
  lifewheel config --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	name := "ui"
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			printUsage()
			return
		}
		if _, ok := commands[args[0]]; ok {
			name, args = args[0], args[1:]
		} else if len(args[0]) > 0 && args[0][0] != '-' {
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
			printUsage()
			os.Exit(2)
		}
	}
	exitOnErr(name, commands[name].Run(args), wiring.stderr)
}
