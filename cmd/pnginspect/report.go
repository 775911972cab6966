package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/pnginspect"
)

// fileReport is the inspection outcome for one input file.
type fileReport struct {
	Name    string       `json:"name"`
	Size    int          `json:"size"`
	Summary string       `json:"summary"`
	Errors  int          `json:"errors"`
	Parts   []partReport `json:"parts"`
}

type partReport struct {
	Offset int                 `json:"offset"`
	Length int                 `json:"length"`
	Kind   pnginspect.PartKind `json:"kind"`
	Type   string              `json:"type,omitempty"`
	Hex    string              `json:"hex"`
	Notes  pnginspect.Notes    `json:"notes"`
}

func newFileReport(name string, size int, result pnginspect.Result, errorsOnly bool) fileReport {
	report := fileReport{
		Name:    name,
		Size:    size,
		Summary: result.Summary(),
		Errors:  result.NumErrors(),
		Parts:   make([]partReport, 0, len(result.Parts)),
	}
	for _, part := range result.Parts {
		if errorsOnly && !part.Notes.HasErrors() {
			continue
		}
		pr := partReport{
			Offset: part.Offset,
			Length: len(part.Bytes),
			Kind:   part.Kind,
			Hex:    part.HexPreview(),
			Notes:  part.Notes,
		}
		if part.Chunk != nil {
			pr.Type = part.Chunk.TypeName
		}
		report.Parts = append(report.Parts, pr)
	}
	return report
}

func writeJSON(w io.Writer, reports []fileReport) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	e.SetEscapeHTML(false)
	return e.Encode(reports)
}

func writeText(w io.Writer, reports []fileReport, summaryOnly bool) error {
	var sb strings.Builder
	for index, report := range reports {
		if summaryOnly {
			fmt.Fprintf(&sb, "%s: %s (%d errors)\n", report.Name, report.Summary, report.Errors)
			continue
		}
		if index > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "== %s (%d bytes) ==\n", report.Name, report.Size)
		fmt.Fprintf(&sb, "Chunks: %s\n", report.Summary)
		for _, part := range report.Parts {
			fmt.Fprintf(&sb, "\n@%d +%d %s\n", part.Offset, part.Length, part.Kind)
			if part.Hex != "" {
				fmt.Fprintf(&sb, "  [%s]\n", part.Hex)
			}
			writeNotes(&sb, "  ", part.Notes.Outer)
			writeNotes(&sb, "  > ", part.Notes.Inner)
			writeNotes(&sb, "  ! ", part.Notes.Errors)
		}
		fmt.Fprintf(&sb, "\n%d errors\n", report.Errors)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeNotes(sb *strings.Builder, prefix string, notes []string) {
	for _, note := range notes {
		sb.WriteString(prefix)
		sb.WriteString(note)
		sb.WriteByte('\n')
	}
}
