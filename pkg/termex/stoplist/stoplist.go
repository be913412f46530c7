package stoplist

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// List is a case-insensitive stopword set.
type List struct {
	stops map[string]struct{}
}

// New creates a list from the given words.
func New(words []string) *List {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		stops[w] = struct{}{}
	}
	return &List{stops: stops}
}

// Default returns the built-in English stoplist.
func Default() *List {
	return New(defaultWords)
}

// IsStop checks if a word is a stopword
func (l *List) IsStop(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.stops[strings.ToLower(word)]
	return ok
}

// Len returns the number of stopwords.
func (l *List) Len() int {
	return len(l.stops)
}

// All returns all stopwords, sorted
func (l *List) All() []string {
	result := make([]string, 0, len(l.stops))
	for s := range l.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Load reads a stoplist file. YAML files use the `terms:` list format;
// anything else is read as one word per line (the first comma-separated
// field is taken, so single-column CSV files work too).
func Load(path string) (*List, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var sl struct {
			Terms []string `yaml:"terms"`
		}
		if err := yaml.Unmarshal(data, &sl); err != nil {
			return nil, err
		}
		return New(sl.Terms), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(words), nil
}
