package bitstat

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the timestamp format written to the ones log.
const TimeLayout = "2006-01-02 15:04:05"

// Record is one line of the running ones log.
type Record struct {
	Time    time.Time
	File    string
	Bytes   int64
	Ones    int64
	Percent float64
}

// NewRecord builds a Record for a capture of byteCount bytes with ones set bits.
func NewRecord(now time.Time, file string, byteCount, ones int64) Record {
	return Record{Time: now, File: file, Bytes: byteCount, Ones: ones, Percent: Percent(ones, byteCount)}
}

func (r Record) fields() []string {
	return []string{
		r.Time.Format(TimeLayout),
		r.File,
		strconv.FormatInt(r.Bytes, 10),
		strconv.FormatInt(r.Ones, 10),
		strconv.FormatFloat(r.Percent, 'f', 4, 64),
	}
}

// AppendLog appends rec to the CSV log at path, creating it if needed.
func AppendLog(path string, rec Record) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ones log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(rec.fields()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write ones log: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write ones log: %w", err)
	}
	return f.Close()
}

// ReadLog parses a ones log. Blank lines are skipped; malformed rows are
// reported with their line number.
func ReadLog(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		if len(row) != 5 {
			return nil, fmt.Errorf("line %d: expected 5 fields, got %d", i+1, len(row))
		}
		ts, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(row[0]), time.Local)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bytes: %w", i+1, err)
		}
		ones, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: ones: %w", i+1, err)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: percent: %w", i+1, err)
		}
		out = append(out, Record{Time: ts, File: row[1], Bytes: n, Ones: ones, Percent: pct})
	}
	return out, nil
}

// ReadLogFile is ReadLog on a file path.
func ReadLogFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLog(f)
}
