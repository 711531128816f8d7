package waitlog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/preston-bernstein/park-waits-service/internal/timeutil"
)

// FileName builds "<park name with underscores>_<YYYY-MM-DD>.csv" for day in its own location.
func FileName(parkName string, day time.Time) string {
	return fmt.Sprintf("%s_%s.csv", strings.ReplaceAll(parkName, " ", "_"), timeutil.FormatDate(day))
}

// LogPath builds the path of a park's log for the given day under baseDir.
func LogPath(baseDir, parkName string, day time.Time) string {
	return filepath.Join(baseDir, FileName(parkName, day))
}
