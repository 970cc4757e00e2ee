package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// outputJSON outputs data as pretty-printed JSON
func outputJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// outputYAML outputs data as YAML
func outputYAML(v interface{}) {
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding YAML: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(data))
}

// outputStructured reports whether structured output was requested, and if so
// emits v in the requested encoding. Callers fall through to pretty printing
// when it returns false.
func outputStructured(v interface{}) bool {
	switch {
	case outputFormat == "yaml":
		outputYAML(v)
		return true
	case jsonOutput || outputFormat == "json":
		outputJSON(v)
		return true
	}
	return false
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// priorityColor renders a priority tag in its severity color.
func priorityColor(p string) string {
	switch p {
	case "P0":
		return red(p)
	case "P1":
		return yellow(p)
	case "P3":
		return faint(p)
	default:
		return p
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
