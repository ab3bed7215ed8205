// Package export serializes conversations to downloadable files. Supported
// formats are json, txt, and pdf.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/parley/parley/internal/chat"
	perrors "github.com/parley/parley/internal/errors"
	"github.com/parley/parley/internal/logger"
)

// Formats lists the supported export formats.
var Formats = []string{"txt", "json", "pdf"}

// IsValidFormat reports whether format is supported.
func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Write exports conversations in the given format to dir, returning the path
// of the file written. File names are timestamped so repeated exports never
// collide.
func Write(conversations []*chat.Conversation, format, dir string) (string, error) {
	if !IsValidFormat(format) {
		return "", perrors.ExportFailed(format, fmt.Errorf("unknown format"))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", perrors.ExportFailed(format, err)
	}

	name := fmt.Sprintf("conversations-%s.%s", time.Now().Format("2006-01-02-150405"), format)
	path := filepath.Join(dir, name)

	var err error
	switch format {
	case "json":
		err = writeFile(path, func(w io.Writer) error { return WriteJSON(w, conversations) })
	case "txt":
		err = writeFile(path, func(w io.Writer) error { return WriteText(w, conversations) })
	case "pdf":
		err = WritePDF(path, conversations)
	}
	if err != nil {
		return "", perrors.ExportFailed(format, err)
	}

	logger.Log("Export: Wrote %d conversations to %s", len(conversations), path)
	return path, nil
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteJSON renders conversations as indented JSON.
func WriteJSON(w io.Writer, conversations []*chat.Conversation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(conversations)
}

// WriteText renders conversations as a plain-text transcript.
func WriteText(w io.Writer, conversations []*chat.Conversation) error {
	for i, conv := range conversations {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := fmt.Sprintf("=== %s (%s) ===", conv.Title, conv.LastActivity.Format("2006-01-02 15:04"))
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for _, msg := range conv.Messages {
			label := "You"
			if msg.Role == chat.RoleAssistant {
				label = "Assistant"
			}
			if _, err := fmt.Fprintf(w, "[%s] %s\n", label, msg.Content); err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePDF renders conversations to a PDF file at path.
func WritePDF(path string, conversations []*chat.Conversation) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	for _, conv := range conversations {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 7, conv.Title, "", "L", false)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.MultiCell(0, 5, conv.LastActivity.Format("2006-01-02 15:04"), "", "L", false)
		pdf.Ln(3)

		for _, msg := range conv.Messages {
			pdf.SetTextColor(60, 60, 60)
			pdf.SetFont("Helvetica", "B", 10)
			label := "You"
			if msg.Role == chat.RoleAssistant {
				label = "Assistant"
			}
			pdf.MultiCell(0, 5, label, "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
			// fpdf expects latin-1; strip what it cannot encode.
			pdf.MultiCell(0, 5, toLatin1(msg.Content), "", "L", false)
			pdf.Ln(2)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// toLatin1 replaces characters outside latin-1 so fpdf renders cleanly.
func toLatin1(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= 0xFF {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
