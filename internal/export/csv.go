// Package export serialises angle series for external consumers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/eventcam/wheeltrack/internal/wheel"
)

// WriteAngleSeries writes the series as two-column rows (slice index,
// angle in degrees) without a header, matching the downstream charting
// tools. Undefined entries are serialised as an empty value field, never
// coerced to zero.
func WriteAngleSeries(w io.Writer, series wheel.AngleSeries) error {
	cw := csv.NewWriter(w)
	for _, a := range series {
		value := ""
		if a.Defined {
			value = strconv.FormatFloat(a.Degrees, 'f', -1, 64)
		}
		if err := cw.Write([]string{strconv.Itoa(a.SliceIndex), value}); err != nil {
			return fmt.Errorf("write angle row %d: %w", a.SliceIndex, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush angle csv: %w", err)
	}
	return nil
}

// SaveAngleSeries writes the series to path, creating parent directories
// as needed.
func SaveAngleSeries(path string, series wheel.AngleSeries) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create angle csv: %w", err)
	}
	defer f.Close()

	if err := WriteAngleSeries(f, series); err != nil {
		return err
	}
	return f.Close()
}
