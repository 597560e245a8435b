package search

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

type corpusFile struct {
	Candidates []Candidate `yaml:"candidates"`
}

// LoadCorpus reads a YAML corpus file of the form:
//
//	candidates:
//	  - title: DeFi Dashboard
//	    description: Real-time cryptocurrency portfolio tracker
//	    category: project
//	    relevance: 95
//
// Candidates without an id are numbered by position.
func LoadCorpus(path string) ([]Candidate, error) {
	return loadCorpus(path, 0)
}

// LoadCorpusGlob loads every file matching pattern (doublestar syntax, so
// "corpus/**/*.yaml" works) in lexical order and concatenates them. A pattern
// without meta characters behaves like LoadCorpus. Auto-assigned ids continue
// across files; duplicate ids are an error.
func LoadCorpusGlob(pattern string) ([]Candidate, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid corpus pattern %q", pattern)
	}

	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob corpus files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no corpus files match %q", pattern)
	}
	slices.Sort(paths)

	var (
		all  []Candidate
		seen = make(map[string]string)
	)
	for _, path := range paths {
		candidates, err := loadCorpus(path, len(all))
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			if prev, ok := seen[c.ID]; ok {
				return nil, fmt.Errorf("%s: duplicate candidate id %q (first defined in %s)", path, c.ID, prev)
			}
			seen[c.ID] = path
		}
		all = append(all, candidates...)
	}

	return all, nil
}

func loadCorpus(path string, offset int) ([]Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corpus file %s: %w", path, err)
	}

	for i, c := range file.Candidates {
		if c.Title == "" {
			return nil, fmt.Errorf("%s: candidate %d: title is required", path, i)
		}
		if !c.Category.Valid() {
			return nil, fmt.Errorf("%s: candidate %d: invalid category %q", path, i, c.Category)
		}
		if c.Relevance < 0 || c.Relevance > 100 {
			return nil, fmt.Errorf("%s: candidate %d: relevance must be between 0 and 100", path, i)
		}
		if c.ID == "" {
			file.Candidates[i].ID = strconv.Itoa(offset + i + 1)
		}
	}

	return file.Candidates, nil
}
