// Package export renders a task list for output outside the store.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dohr-michael/todo/internal/tasks"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat accepts a format name. "yml" and "md" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml or markdown)", s)
	}
}

type record struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

func records(list []tasks.Task) []record {
	out := make([]record, 0, len(list))
	for _, t := range list {
		out = append(out, record{ID: t.ID, Text: t.Text, Completed: t.Completed})
	}
	return out
}

// Write encodes list to w in the given format.
func Write(w io.Writer, list []tasks.Task, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records(list)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records(list)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(list))
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// Markdown renders list as a GitHub task list.
func Markdown(list []tasks.Task) string {
	var b strings.Builder
	for _, t := range list {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, OneLine(t.Text))
	}
	return b.String()
}

// OneLine collapses runs of whitespace, newlines and tabs included, to
// single spaces.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
