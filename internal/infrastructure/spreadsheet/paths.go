package spreadsheet

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/riskibarqy/playoff-pool/internal/domain/playoff"
)

const otherPointsFileName = "other_points.csv"

// RoundFile is <dataDir>/<year>/<round>.csv.
func RoundFile(dataDir string, year int, round playoff.Round) string {
	return filepath.Join(dataDir, strconv.Itoa(year), round.String()+".csv")
}

func OtherPointsFile(dataDir string, year int) string {
	return filepath.Join(dataDir, strconv.Itoa(year), otherPointsFileName)
}

// Exists reports whether path is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
