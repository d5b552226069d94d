// cmd/tools/dataset-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"whiskey-reviewer/internal/common/dataset"
	getreview "whiskey-reviewer/internal/workers/skill/get-review"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	lookupCmd := flag.NewFlagSet("lookup", flag.ExitOnError)

	validatePath := validateCmd.String("path", "whiskey_data.json", "Path to dataset file")
	strict := validateCmd.Bool("strict", false, "Fail when duplicate dram names are present")

	lookupPath := lookupCmd.String("path", "whiskey_data.json", "Path to dataset file")
	name := lookupCmd.String("name", "", "Dram name as it would be spoken")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		store := load(*validatePath)
		fmt.Printf("%s: %s\n", *validatePath, dataset.Summary(store))
		dups := store.Duplicates()
		for _, d := range dups {
			fmt.Printf("  duplicate: %s\n", d)
		}
		if *strict && len(dups) > 0 {
			os.Exit(1)
		}

	case "lookup":
		lookupCmd.Parse(os.Args[2:])
		if *name == "" {
			fmt.Println("Error: name is required for lookup.")
			lookupCmd.Usage()
			os.Exit(1)
		}
		store := load(*lookupPath)
		if d, ok := store.Find(*name); ok {
			fmt.Println(getreview.Synthesize(d))
		} else {
			fmt.Println(getreview.NotFoundText(*name))
		}

	default:
		help()
		os.Exit(1)
	}
}

func load(path string) *dataset.Store {
	store, err := dataset.LoadFile(path)
	if err != nil {
		fmt.Printf("Error loading dataset: %v\n", err)
		os.Exit(1)
	}
	return store
}

func help() {
	fmt.Println("Usage: dataset-check <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  validate  Load the dataset and report record and duplicate counts")
	fmt.Println("  lookup    Print the response text for one dram name")
}
