package source

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Entry is one name with its optional popularity weight in [0,1].
type Entry struct {
	Name   string
	Weight float64
}

type Loader interface {
	Load() ([]Entry, error)
	GetCurrentMtime() (int64, error)
	Path() string
	Key() string
}

// FileLoader reads a plain names list: one name per line, optionally
// followed by a tab or ';' and an occurrence count.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (f *FileLoader) Load() ([]Entry, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	type row struct {
		name  string
		count float64
		ok    bool
	}
	var rows []row
	seen := make(map[string]bool)
	allCounted := true

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, countStr, hasCount := cut(line)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		r := row{name: name}
		if hasCount {
			count, err := strconv.ParseFloat(countStr, 64)
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%s:%d: invalid count %q", f.path, lineNo, countStr)
			}
			r.count, r.ok = count, true
		}
		allCounted = allCounted && r.ok
		rows = append(rows, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var maxCount float64
	if allCounted {
		for _, r := range rows {
			maxCount = max(maxCount, r.count)
		}
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{Name: r.name}
		if maxCount > 0 {
			entries[i].Weight = r.count / maxCount
		}
	}
	return entries, nil
}

func cut(line string) (name, count string, ok bool) {
	for _, sep := range []string{"\t", ";"} {
		if before, after, found := strings.Cut(line, sep); found {
			return strings.TrimSpace(before), strings.TrimSpace(after), true
		}
	}
	return line, "", false
}

func (f *FileLoader) GetCurrentMtime() (int64, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().Unix(), nil
}

func (f *FileLoader) Path() string {
	return f.path
}

func (f *FileLoader) Key() string {
	return "names"
}

// HasWeights reports whether any entry carries a popularity weight.
func HasWeights(entries []Entry) bool {
	for _, e := range entries {
		if e.Weight > 0 {
			return true
		}
	}
	return false
}
