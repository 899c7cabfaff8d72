// Package driver loads and runs snippet suites: YAML manifests that pair
// named snippets with the environment bindings they are expected to produce.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"refsem/interpreter-go/pkg/interpreter"
)

// Suite represents the parsed contents of a suite manifest.
type Suite struct {
	Path     string
	Name     string
	Snippets []*Snippet
	Remotes  []*Remote
}

// Snippet is one named snippet together with its expected bindings. Exactly
// one of Source (inline text) or File (path relative to the manifest) is set.
type Snippet struct {
	Name   string
	Source string
	File   string
	// Expect maps place names to their rendered values, e.g. "b": "&a".
	// A nil Expect only asserts that evaluation succeeds.
	Expect map[string]string
	// ExpectError, when set, asserts that evaluation fails and that the
	// error text contains the given fragment.
	ExpectError string
}

// Remote names an external suite repository fetched over git.
type Remote struct {
	Name string
	Git  string
	Rev  string
}

// ValidationError aggregates suite validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "suite: invalid manifest"
	}
	var b strings.Builder
	b.WriteString("suite validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadSuite parses a suite manifest from disk, returning a validated suite.
func LoadSuite(path string) (*Suite, error) {
	if path == "" {
		return nil, fmt.Errorf("suite: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("suite: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("suite: open %s: %w", absPath, err)
	}
	defer file.Close()

	suite, err := DecodeSuite(file)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite: %s is empty", absPath)
		}
		return nil, fmt.Errorf("suite: parse %s: %w", absPath, err)
	}
	suite.Path = absPath
	if err := suite.validate(); err != nil {
		return nil, err
	}
	return suite, nil
}

// DecodeSuite parses a manifest from a reader without validating it.
func DecodeSuite(r io.Reader) (*Suite, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw suiteFile
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw.toSuite(), nil
}

func (s *Suite) validate() error {
	var errs ValidationError
	if s.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if len(s.Snippets) == 0 {
		errs.Issues = append(errs.Issues, "at least one snippet must be defined")
	}
	seen := make(map[string]struct{}, len(s.Snippets))
	for i, snippet := range s.Snippets {
		if snippet == nil {
			continue
		}
		label := snippet.Name
		if label == "" {
			label = fmt.Sprintf("snippets[%d]", i)
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: name must be provided", label))
		}
		if _, dup := seen[snippet.Name]; dup && snippet.Name != "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: duplicate snippet name", label))
		}
		seen[snippet.Name] = struct{}{}
		switch {
		case snippet.Source == "" && snippet.File == "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: must specify source or file", label))
		case snippet.Source != "" && snippet.File != "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: source and file are mutually exclusive", label))
		}
		if snippet.ExpectError != "" && len(snippet.Expect) > 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: expect and expect_error are mutually exclusive", label))
		}
	}
	for i, remote := range s.Remotes {
		if remote == nil {
			continue
		}
		if remote.Name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("remotes[%d]: name must be provided", i))
		}
		if remote.Git == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("remotes[%d]: git url must be provided", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Result reports the outcome of one snippet run.
type Result struct {
	Name     string
	Passed   bool
	Rendered string
	Failure  string
}

// Run evaluates every snippet in the suite with the given model. Each snippet
// gets a fresh environment; one failing snippet does not stop the rest.
func (s *Suite) Run(model interpreter.Model) ([]Result, error) {
	results := make([]Result, 0, len(s.Snippets))
	for _, snippet := range s.Snippets {
		result, err := s.runSnippet(model, snippet)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Suite) runSnippet(model interpreter.Model, snippet *Snippet) (Result, error) {
	result := Result{Name: snippet.Name}

	source := snippet.Source
	if snippet.File != "" {
		path := snippet.File
		if !filepath.IsAbs(path) && s.Path != "" {
			path = filepath.Join(filepath.Dir(s.Path), path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return result, fmt.Errorf("suite: snippet %s: %w", snippet.Name, err)
		}
		source = string(data)
	}

	env, err := interpreter.Interpret(model, source)
	if err != nil {
		if snippet.ExpectError == "" {
			result.Failure = fmt.Sprintf("unexpected error: %v", err)
			return result, nil
		}
		if !strings.Contains(err.Error(), snippet.ExpectError) {
			result.Failure = fmt.Sprintf("error %q does not contain %q", err, snippet.ExpectError)
			return result, nil
		}
		result.Passed = true
		return result, nil
	}

	result.Rendered = env.Render()
	if snippet.ExpectError != "" {
		result.Failure = "expected an error, evaluation succeeded"
		return result, nil
	}

	snapshot := env.Snapshot()
	var mismatches []string
	for place, want := range snippet.Expect {
		got, ok := snapshot[place]
		switch {
		case !ok:
			mismatches = append(mismatches, fmt.Sprintf("%s: not bound (want %s)", place, want))
		case got.String() != want:
			mismatches = append(mismatches, fmt.Sprintf("%s: got %s, want %s", place, got, want))
		}
	}
	if snippet.Expect != nil && len(snapshot) != len(snippet.Expect) {
		mismatches = append(mismatches, fmt.Sprintf("bound %d places, want %d", len(snapshot), len(snippet.Expect)))
	}
	if len(mismatches) > 0 {
		result.Failure = strings.Join(mismatches, "; ")
		return result, nil
	}

	result.Passed = true
	return result, nil
}

type suiteFile struct {
	Name     string        `yaml:"name"`
	Snippets []snippetYAML `yaml:"snippets"`
	Remotes  []remoteYAML  `yaml:"remotes"`
}

type snippetYAML struct {
	Name        string            `yaml:"name"`
	Source      string            `yaml:"source"`
	File        string            `yaml:"file"`
	Expect      map[string]string `yaml:"expect"`
	ExpectError string            `yaml:"expect_error"`
}

type remoteYAML struct {
	Name string `yaml:"name"`
	Git  string `yaml:"git"`
	Rev  string `yaml:"rev"`
}

func (sf suiteFile) toSuite() *Suite {
	suite := &Suite{
		Name:     strings.TrimSpace(sf.Name),
		Snippets: make([]*Snippet, 0, len(sf.Snippets)),
		Remotes:  make([]*Remote, 0, len(sf.Remotes)),
	}
	for _, raw := range sf.Snippets {
		suite.Snippets = append(suite.Snippets, &Snippet{
			Name:        strings.TrimSpace(raw.Name),
			Source:      raw.Source,
			File:        strings.TrimSpace(raw.File),
			Expect:      raw.Expect,
			ExpectError: strings.TrimSpace(raw.ExpectError),
		})
	}
	for _, raw := range sf.Remotes {
		suite.Remotes = append(suite.Remotes, &Remote{
			Name: strings.TrimSpace(raw.Name),
			Git:  strings.TrimSpace(raw.Git),
			Rev:  strings.TrimSpace(raw.Rev),
		})
	}
	return suite
}
