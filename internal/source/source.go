// Package source loads raw documents from disk: a directory of text or HTML
// files, or a JSONL file with one document per line.
package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Document is one raw input document.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Load reads documents from path. A directory is read file by file, a
// ".jsonl" file line by line, and any other file as a single document.
func Load(path string, logger *slog.Logger) ([]Document, error) {
	if logger == nil {
		logger = slog.Default()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path, logger)
	}
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return LoadJSONL(path, logger)
	}
	doc, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return []Document{doc}, nil
}

// LoadDir reads every regular, non-hidden file in dir, sorted by name.
// Unreadable files are skipped with a warning.
func LoadDir(dir string, logger *slog.Logger) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []Document
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		doc, err := readFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logger.Warn("skipping input file", "file", e.Name(), "err", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadJSONL reads {"id","title","text"} objects, one per line. Malformed
// lines and lines without text are skipped with a warning; a missing ID is
// replaced by the line number.
func LoadJSONL(path string, logger *slog.Logger) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var docs []Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			logger.Warn("skipping malformed line", "line", line, "err", err)
			continue
		}
		if strings.TrimSpace(doc.Text) == "" {
			logger.Warn("skipping line without text", "line", line)
			continue
		}
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("line-%d", line)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return docs, nil
}

func readFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		title, text := StripHTML(string(data))
		if title == "" {
			title = name
		}
		return Document{ID: name, Title: title, Text: text}, nil
	default:
		return Document{ID: name, Title: name, Text: string(data)}, nil
	}
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "blockquote": true, "pre": true,
}

// StripHTML returns the document title and its visible text. Script and
// style content is dropped and block elements are separated by newlines.
func StripHTML(s string) (string, string) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", s
	}

	var title string
	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "title":
				if n.FirstChild != nil && title == "" {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteByte('\n')
		}
	}
	extractText(doc)

	return title, strings.TrimSpace(buf.String())
}
