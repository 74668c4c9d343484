package importexport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moolen/fmea/internal/models"
)

// Format is a worksheet file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("cannot infer worksheet format from %q (expected .json, .yaml or .yml)", path)
}

// Decode reads one worksheet document, checks its version and validates
// the worksheet.
func Decode(r io.Reader, format Format) (*models.Worksheet, error) {
	var doc Document

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("empty document")
			}
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("empty document")
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	if err := checkVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	if err := doc.Worksheet.Validate(); err != nil {
		return nil, err
	}
	return &doc.Worksheet, nil
}

// Encode writes ws as a CurrentFormatVersion document.
func Encode(w io.Writer, ws *models.Worksheet, format Format) error {
	doc := Document{FormatVersion: CurrentFormatVersion, Worksheet: *ws}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(&doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
