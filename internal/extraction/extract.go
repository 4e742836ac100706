// Package extraction supplies plain text to the analysis engine from
// uploaded documents and job posting URLs. It is a collaborator of the
// engine, not part of it: extraction failure surfaces as an empty string,
// which the engine tolerates by producing a low-scoring baseline.
package extraction

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
)

// ExtractText extracts plain text from an uploaded document. Supported
// formats are PDF, DOCX, and anything that decodes as UTF-8 text. Failures
// are logged and yield "" per the collaborator contract.
func ExtractText(filename string, data []byte) string {
	text, err := extract(filename, data)
	if err != nil {
		log.Printf("text extraction failed for %s: %v", filename, err)
		return ""
	}
	return text
}

func extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDocx(data)
	default:
		if !utf8.Valid(data) {
			return "", errors.New("file is not valid UTF-8 text")
		}
		return CleanText(string(data)), nil
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	content, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", err
	}
	return CleanText(buf.String()), nil
}

var xmlTags = regexp.MustCompile(`<[^>]+>`)

// extractDocx pulls text out of the main document part of a DOCX archive.
// Paragraph closes become newlines so the section classifier still sees
// line structure.
func extractDocx(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var document []byte
	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		document, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", err
		}
		break
	}
	if len(document) == 0 {
		return "", errors.New("no document.xml found in docx")
	}

	text := string(document)
	text = strings.ReplaceAll(text, "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = xmlTags.ReplaceAllString(text, " ")
	return CleanText(text), nil
}
