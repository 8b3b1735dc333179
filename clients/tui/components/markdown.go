// Package components provides rendering helpers shared by the terminal clients.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"

	"github.com/dohr-michael/todo/internal/export"
	"github.com/dohr-michael/todo/internal/tasks"
)

// Palette shared with the interactive client.
const (
	colorPrimary = "#7C3AED"
	colorSuccess = "#10B981"
	colorMuted   = "#6B7280"
	colorText    = "#E5E7EB"
)

// checklistStyle is a compact glamour style for task checklists.
func checklistStyle() ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(colorText),
			},
			Margin: uintPtr(0),
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(colorPrimary),
				Bold:  boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(colorPrimary),
				Bold:  boolPtr(true),
			},
		},
		List: ansi.StyleList{
			LevelIndent: 2,
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: stringPtr(colorText),
				},
			},
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Task: ansi.StyleTask{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(colorText),
			},
			Ticked:   "[✓] ",
			Unticked: "[ ] ",
		},
		Strikethrough: ansi.StylePrimitive{
			CrossedOut: boolPtr(true),
			Color:      stringPtr(colorMuted),
		},
		Emph: ansi.StylePrimitive{
			Italic: boolPtr(true),
			Color:  stringPtr(colorMuted),
		},
		Strong: ansi.StylePrimitive{
			Bold:  boolPtr(true),
			Color: stringPtr(colorSuccess),
		},
	}
}

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }
func uintPtr(u uint) *uint       { return &u }

// ChecklistMarkdown builds the markdown document for list shown under f.
func ChecklistMarkdown(list []tasks.Task, f tasks.Filter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Tasks (%s)\n\n", f)

	var shown []tasks.Task
	done := 0
	for _, t := range list {
		if !f.Match(t) {
			continue
		}
		if t.Completed {
			done++
			t.Text = "~~" + t.Text + "~~"
		}
		shown = append(shown, t)
	}
	if len(shown) == 0 {
		b.WriteString("*no tasks found*\n")
		return b.String()
	}

	b.WriteString(export.Markdown(shown))
	fmt.Fprintf(&b, "\n**%d/%d done**\n", done, len(shown))
	return b.String()
}

// RenderChecklist renders list under f as styled terminal output.
// If rendering fails, the plain markdown is returned.
func RenderChecklist(list []tasks.Task, f tasks.Filter, width int) string {
	return RenderMarkdown(ChecklistMarkdown(list, f), width)
}

// RenderMarkdown renders markdown content to styled terminal output.
// If rendering fails, returns the original content.
func RenderMarkdown(content string, width int) string {
	if content == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(checklistStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	// Trim trailing newlines that glamour adds
	return strings.TrimRight(rendered, "\n")
}
