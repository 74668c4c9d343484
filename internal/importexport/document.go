// Package importexport reads and writes worksheet files.
//
// A worksheet file is JSON (.json) or YAML (.yaml, .yml) holding one
// models.Worksheet plus a format_version. Versions >= 1.0 and < 2.0 are
// accepted; a missing version is read as 1.0. Saving always writes
// CurrentFormatVersion.
package importexport

import (
	"fmt"

	"github.com/hashicorp/go-version"

	"github.com/moolen/fmea/internal/models"
)

// CurrentFormatVersion is written by Save.
const CurrentFormatVersion = "1.0"

var supportedVersions = version.MustConstraints(version.NewConstraint(">= 1.0, < 2.0"))

// Document is the on-disk envelope of a worksheet.
type Document struct {
	FormatVersion string `json:"format_version,omitempty" yaml:"format_version,omitempty"`

	models.Worksheet `yaml:",inline"`
}

// FormatError reports a document whose format_version cannot be read.
type FormatError struct {
	Version string
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported format_version %q: %s", e.Version, e.Reason)
}

// checkVersion validates v against the supported range.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	parsed, err := version.NewVersion(v)
	if err != nil {
		return &FormatError{Version: v, Reason: "not a version number"}
	}
	if !supportedVersions.Check(parsed) {
		return &FormatError{Version: v, Reason: fmt.Sprintf("supported range is %s", supportedVersions)}
	}
	return nil
}
