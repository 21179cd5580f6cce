package repository

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"leetboard/internal/common"
	"leetboard/internal/domain/model"
)

// RosterPaths names the four line-aligned roster inputs.
type RosterPaths struct {
	Rolls    string
	Names    string
	URLs     string
	Sections string
}

// Files lists the paths in roll, name, url, section order.
func (p RosterPaths) Files() []string {
	return []string{p.Rolls, p.Names, p.URLs, p.Sections}
}

type RosterRepository interface {
	// LoadRoster reads all roster rows. It fails with an error wrapping
	// common.ErrRosterMismatch when the four lists differ in length.
	LoadRoster(ctx context.Context) ([]model.RosterEntry, error)
}

type fileRosterRepository struct {
	paths RosterPaths
}

func NewFileRosterRepository(paths RosterPaths) RosterRepository {
	return &fileRosterRepository{paths: paths}
}

func (r *fileRosterRepository) LoadRoster(ctx context.Context) ([]model.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rolls, err := readLinesFile(r.paths.Rolls)
	if err != nil {
		return nil, err
	}
	names, err := readLinesFile(r.paths.Names)
	if err != nil {
		return nil, err
	}
	urls, err := readLinesFile(r.paths.URLs)
	if err != nil {
		return nil, err
	}
	sections, err := readLinesFile(r.paths.Sections)
	if err != nil {
		return nil, err
	}

	return ZipRoster(rolls, names, urls, sections)
}

// ZipRoster aligns the four lists by position.
func ZipRoster(rolls, names, urls, sections []string) ([]model.RosterEntry, error) {
	if len(rolls) != len(names) || len(names) != len(urls) || len(names) != len(sections) {
		return nil, fmt.Errorf("rolls=%d names=%d urls=%d sections=%d: %w",
			len(rolls), len(names), len(urls), len(sections), common.ErrRosterMismatch)
	}

	entries := make([]model.RosterEntry, len(rolls))
	for i := range rolls {
		entries[i] = model.RosterEntry{
			Roll:    rolls[i],
			Name:    names[i],
			URL:     urls[i],
			Section: sections[i],
		}
	}
	return entries, nil
}

func readLinesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read roster file %s: %w", path, err)
	}
	return lines, nil
}

// ReadLines returns the trimmed, non-blank lines of r.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
