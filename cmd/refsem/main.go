package main

import (
	"fmt"
	"os"
	"path/filepath"

	"refsem/interpreter-go/pkg/driver"
	"refsem/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "refsem 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runSnippet(args[1:])
	case "suite":
		return runSuite(args[1:])
	default:
		return runSnippet(args)
	}
}

func runSnippet(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "refsem run requires exactly one snippet file")
		return 1
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read snippet: %v\n", err)
		return 1
	}

	env, err := interpreter.Interpret(interpreter.ReferenceModel{}, string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluation failed: %v\n", err)
		return 1
	}

	fmt.Fprint(os.Stdout, env.Render())
	return 0
}

func runSuite(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "refsem suite requires exactly one manifest path")
		return 1
	}

	suite, err := driver.LoadSuite(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load suite: %v\n", err)
		return 1
	}

	suites := []*driver.Suite{suite}
	if len(suite.Remotes) > 0 {
		cacheDir := filepath.Join(filepath.Dir(suite.Path), ".refsem-cache")
		paths, err := suite.FetchRemotes(cacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to fetch remotes: %v\n", err)
			return 1
		}
		remoteSuites, err := driver.LoadRemoteSuites(paths)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load remote suites: %v\n", err)
			return 1
		}
		suites = append(suites, remoteSuites...)
	}

	model := interpreter.ReferenceModel{}
	failures := 0
	for _, s := range suites {
		results, err := s.Run(model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "suite %s failed to run: %v\n", s.Name, err)
			return 1
		}
		for _, result := range results {
			if result.Passed {
				fmt.Fprintf(os.Stdout, "ok   %s/%s\n", s.Name, result.Name)
				continue
			}
			failures++
			fmt.Fprintf(os.Stdout, "FAIL %s/%s: %s\n", s.Name, result.Name, result.Failure)
		}
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d snippet(s) failed\n", failures)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  refsem run <file>         evaluate a snippet file and print the environment
  refsem suite <suite.yml>  run a snippet suite (fetching remote suites if any)
  refsem --version          print the tool version
  refsem --help             show this message`)
}
