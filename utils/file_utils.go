package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	drawablePattern = regexp.MustCompile(`^ic_(.+?)_(outlined|rounded|sharp)(_w[1-7]00)?(_filled)?(_gn?[0-9]+)?_[0-9]+dp$`)
	separators      = strings.NewReplacer(" ", "_", "-", "_")
)

// NormalizeIconName maps user input to a catalog name: "Arrow Back",
// "arrow-back" and "ic_arrow_back_rounded_24dp.xml" all become "arrow_back".
func NormalizeIconName(s string) string {
	base := strings.TrimSuffix(filepath.Base(strings.TrimSpace(s)), ".xml")
	base = strings.ToLower(strings.Join(strings.Fields(base), " "))
	if m := drawablePattern.FindStringSubmatch(base); m != nil {
		base = m[1]
	}
	return separators.Replace(base)
}

// ReadNameList reads icon names from path: one or more per line, separated by
// whitespace or commas, with # starting a comment. Duplicates are dropped.
func ReadNameList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open name list: %w", err)
	}
	defer f.Close()

	var names []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, field := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			name := NormalizeIconName(field)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name list: %w", err)
	}
	return names, nil
}
