package badge

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	cerrors "github.com/imagematrix/matrix-cli/util/common/errors"
)

// coberturaReport is the root element of a Cobertura coverage XML file, the
// format coverage tooling emits alongside the test results.
type coberturaReport struct {
	XMLName  xml.Name `xml:"coverage"`
	LineRate float64  `xml:"line-rate,attr"`
}

// CoverageFromFile reads a Cobertura XML file and returns the line coverage
// as a percentage in [0, 100].
func CoverageFromFile(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, cerrors.NewResultsError(path, cerrors.ErrArtifactMissing)
		}
		return 0, cerrors.NewResultsError(path, err)
	}

	var report coberturaReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return 0, cerrors.NewResultsError(path, err)
	}
	if report.LineRate < 0 || report.LineRate > 1 {
		return 0, cerrors.NewResultsError(path,
			fmt.Errorf("line-rate %v out of range", report.LineRate))
	}
	return report.LineRate * 100, nil
}

// Badge is the shields.io endpoint schema served from the gist.
type Badge struct {
	SchemaVersion int    `json:"schemaVersion"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Color         string `json:"color"`
}

// New builds a badge document for a coverage percentage. The message is the
// percentage rounded to the nearest whole number.
func New(label string, percent float64) Badge {
	return Badge{
		SchemaVersion: 1,
		Label:         label,
		Message:       fmt.Sprintf("%d%%", int(math.Round(percent))),
		Color:         ColorFor(percent),
	}
}

// ColorFor maps a coverage percentage onto the usual shields color bands.
func ColorFor(percent float64) string {
	switch {
	case percent >= 95:
		return "brightgreen"
	case percent >= 90:
		return "green"
	case percent >= 75:
		return "yellowgreen"
	case percent >= 60:
		return "yellow"
	case percent >= 40:
		return "orange"
	default:
		return "red"
	}
}
