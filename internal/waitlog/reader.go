package waitlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/preston-bernstein/park-waits-service/internal/timeutil"
)

// ErrNoLog is returned when no log exists for the requested park and day.
var ErrNoLog = errors.New("wait log not found")

// Reader loads logs back into rows.
type Reader struct {
	basePath string
}

// NewReader constructs a reader rooted at basePath.
func NewReader(basePath string) *Reader {
	if basePath == "" {
		basePath = "data"
	}
	return &Reader{basePath: basePath}
}

// Load reads a park's log for the given day (any instant on that calendar day).
func (r *Reader) Load(parkName string, day time.Time) ([]Row, error) {
	f, err := os.Open(LogPath(r.basePath, parkName, day))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoLog
		}
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a log. Logs opened and re-saved by spreadsheet tools often gain a UTF-8 BOM
// or become UTF-16; both are decoded transparently.
func Decode(src io.Reader) ([]Row, error) {
	decoded := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header[0] != Header[0] {
		return nil, fmt.Errorf("unexpected header %q", header)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseRecord(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string) (Row, error) {
	ts, err := time.Parse(timeutil.TimestampLayout, rec[0])
	if err != nil {
		return Row{}, err
	}
	row := Row{
		Timestamp: ts,
		RideID:    rec[2],
		RideName:  rec[3],
		Status:    rec[4],
		Event:     rec[6],
	}
	if rec[5] != "" {
		wait, err := strconv.Atoi(rec[5])
		if err != nil {
			return Row{}, fmt.Errorf("wait time %q: %w", rec[5], err)
		}
		row.WaitTime = &wait
	}
	return row, nil
}
