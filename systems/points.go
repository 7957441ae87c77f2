package systems

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// LoadPointsCSV decodes heat inputs from CSV with an x,y,heat header.
func LoadPointsCSV(r io.Reader) ([]HeatInput, error) {
	var points []HeatInput
	if err := gocsv.Unmarshal(r, &points); err != nil {
		return nil, fmt.Errorf("decoding heat points: %w", err)
	}
	return points, nil
}

// LoadPointsFile reads heat inputs from a CSV file.
func LoadPointsFile(path string) ([]HeatInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heat points: %w", err)
	}
	defer f.Close()
	return LoadPointsCSV(f)
}
