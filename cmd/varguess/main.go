// Command varguess is a debug driver for the variable-type guessing pass:
// it runs the pass over a small built-in demo program (or, with -fixture,
// prints the description bundled in a txtar archive alongside it) and
// dumps the resulting buckets. It exists to give the pass's ambient
// CLI/test-tooling stack somewhere to live (SPEC_FULL.md §4) — it is not
// a compiler driver, since there is no parser in this module to drive one
// with (spec.md §1 treats the parser as an external collaborator).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/tools/txtar"

	"github.com/wethu/ivarguess/internal/vartypes"
)

const (
	ansiBold  = "\x1b[1m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func main() {
	fixture := flag.String("fixture", "", "path to a txtar fixture whose description.txt is printed before the run")
	flag.Parse()

	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	if *fixture != "" {
		data, err := os.ReadFile(*fixture)
		if err != nil {
			log.Fatalf("reading fixture: %v", err)
		}
		archive := txtar.Parse(data)
		for _, f := range archive.Files {
			if f.Name == "description.txt" {
				fmt.Printf("%s\n\n", f.Data)
				break
			}
		}
	}

	program, table := demoProgram()
	result, err := vartypes.Run(program, table, nil, nil)
	if err != nil {
		log.Fatalf("pass aborted: %v", err)
	}

	printReport(result, colorize)
}

func printReport(result *vartypes.Result, colorize bool) {
	section := func(title string) {
		if colorize {
			fmt.Printf("%s%s%s\n", ansiBold, title, ansiReset)
		} else {
			fmt.Println(title)
		}
	}

	section("globals")
	for name, info := range result.Globals {
		fmt.Printf("  $%s: %s (outside_def=%v)\n", name, info.Type, info.OutsideDef)
	}

	section("class vars")
	for owner, vars := range result.ClassVars {
		for name, info := range vars {
			fmt.Printf("  %s.@@%s: %s (outside_def=%v)\n", owner, name, info.Type, info.OutsideDef)
		}
	}

	section("instance vars")
	for owner, vars := range result.GuessedInstanceVars {
		for name, info := range vars {
			fmt.Printf("  %s#@%s: %s\n", owner, name, info.TypeVars)
		}
	}

	errCount := 0
	for _, m := range result.Errors {
		errCount += len(m)
	}
	if errCount > 0 {
		section("errors")
		for owner, m := range result.Errors {
			for name, e := range m {
				label := fmt.Sprintf("  %s.@%s: %s", owner, name, e.Diagnostic.Error())
				if colorize {
					label = ansiRed + label + ansiReset
				}
				fmt.Println(label)
			}
		}
	}

	globalCount := len(result.Globals)
	ivarCount := 0
	for _, m := range result.GuessedInstanceVars {
		ivarCount += len(m)
	}
	summary := fmt.Sprintf("%s variables guessed, %s errors",
		humanize.Comma(int64(globalCount+ivarCount)), humanize.Comma(int64(errCount)))
	if colorize && errCount == 0 {
		summary = ansiGreen + summary + ansiReset
	}
	fmt.Println()
	fmt.Println(summary)
}
