package checker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/siyuan-infoblox/ordered-imports/pkg/errors"
	"github.com/siyuan-infoblox/ordered-imports/pkg/order"
)

// Format selects how a Result is rendered
type Format string

const (
	TextFormat  Format = "text"
	TableFormat Format = "table"
	JSONFormat  Format = "json"
	YAMLFormat  Format = "yaml"
)

// Formats lists the supported output formats
var Formats = []Format{TextFormat, TableFormat, JSONFormat, YAMLFormat}

// ParseFormat converts a format name to a Format
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", &errors.ConfigurationError{Msg: errors.ErrMsgInvalidFormat, Value: name, Index: -1}
}

var (
	pathStyle    = lipgloss.NewStyle().Bold(true)
	reasonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

// Renderer writes results in one of the supported formats
type Renderer struct {
	Format Format
	Color  bool // style text output with ANSI colors
}

type violationRecord struct {
	Line       int          `json:"line" yaml:"line"`
	Column     int          `json:"column" yaml:"column"`
	Reason     order.Reason `json:"reason" yaml:"reason"`
	Specifier  string       `json:"specifier" yaml:"specifier"`
	Expected   string       `json:"expected" yaml:"expected"`
	Actual     string       `json:"actual" yaml:"actual"`
	Message    string       `json:"message" yaml:"message"`
	AnchorLine int          `json:"anchorLine,omitempty" yaml:"anchorLine,omitempty"`
}

type fileRecord struct {
	Path       string            `json:"path" yaml:"path"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
	Violations []violationRecord `json:"violations" yaml:"violations"`
}

func records(result *Result) []fileRecord {
	files := make([]fileRecord, 0, len(result.Files))
	for _, f := range result.Files {
		rec := fileRecord{Path: f.Path, Violations: []violationRecord{}}
		if f.Err != nil {
			rec.Error = f.Err.Error()
		}
		for _, v := range f.Violations {
			vr := violationRecord{
				Line:      v.Position().Line,
				Column:    v.Position().Column,
				Reason:    v.Reason,
				Specifier: v.Occurrence.Module(),
				Expected:  v.Expected,
				Actual:    v.Actual,
				Message:   v.Message,
			}
			if v.Anchor != nil {
				vr.AnchorLine = v.Anchor.Start.Line
			}
			rec.Violations = append(rec.Violations, vr)
		}
		files = append(files, rec)
	}
	return files
}

// Render writes result to w
func (r Renderer) Render(w io.Writer, result *Result) error {
	var err error
	switch r.Format {
	case JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(records(result))
	case YAMLFormat:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(records(result)); err == nil {
			err = enc.Close()
		}
	case TableFormat:
		_, err = io.WriteString(w, renderTable(result))
	default:
		_, err = io.WriteString(w, r.renderText(result))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToRenderReport, err)
	}
	return nil
}

func (r Renderer) style(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}

func (r Renderer) renderText(result *Result) string {
	var buf bytes.Buffer

	for _, f := range result.Files {
		if f.Err != nil {
			fmt.Fprintf(&buf, "%s: %s\n", r.style(pathStyle, f.Path), r.style(reasonStyle, f.Err.Error()))
			continue
		}
		for _, v := range f.Violations {
			location := fmt.Sprintf("%s:%s", f.Path, v.Position())
			line := fmt.Sprintf("%s: %s", r.style(pathStyle, location), v.Message)
			if v.Anchor != nil {
				line += fmt.Sprintf(" (group started at line %d)", v.Anchor.Start.Line)
			}
			buf.WriteString(line + "\n")
		}
	}

	buf.WriteString(r.style(summaryStyle, summary(result)) + "\n")
	return buf.String()
}

func summary(result *Result) string {
	s := fmt.Sprintf(errors.InfoMsgCheckedFiles, len(result.Files))
	s += fmt.Sprintf(errors.InfoMsgViolationCount, result.ViolationCount())
	if n := result.ErrorCount(); n > 0 {
		s += fmt.Sprintf(errors.InfoMsgErrorCount, n)
	}
	return s
}

func renderTable(result *Result) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Line", "Kind", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, f := range result.Files {
		if f.Err != nil {
			table.Append([]string{f.Path, "", "error", f.Err.Error()})
			continue
		}
		for _, v := range f.Violations {
			table.Append([]string{f.Path, strconv.Itoa(v.Position().Line), string(v.Reason), v.Message})
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(result.Files)),
		"",
		"",
		fmt.Sprintf("%d", result.ViolationCount()),
	})
	table.Render()

	return tableBuffer.String()
}
