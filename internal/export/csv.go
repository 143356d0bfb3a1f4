package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/telemetry"
)

// ErrUnknownEntity is returned when the recorder holds no samples for an id.
var ErrUnknownEntity = errors.New("export: entity not recorded")

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteCSV writes one row per sample of entity id, one column per series.
func WriteCSV(w io.Writer, rec *telemetry.Recorder, id physics.ID) error {
	names := rec.Names(id)
	if names == nil {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, id)
	}

	cols := make([][]float64, len(names))
	for i, n := range names {
		cols[i] = rec.Series(id, n)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return err
	}
	row := make([]string, len(names))
	for i := 0; i < rec.Len(id); i++ {
		for j := range cols {
			row[j] = formatFloat(cols[j][i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LongHeader is the header of WriteLongCSV.
var LongHeader = []string{"entity", "sample", "series", "value"}

// WriteLongCSV writes every recorded sample of every entity, one value per
// row, entities in first-seen order.
func WriteLongCSV(w io.Writer, rec *telemetry.Recorder) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LongHeader); err != nil {
		return err
	}
	for _, id := range rec.IDs() {
		entity := strconv.FormatUint(uint64(id), 10)
		for _, name := range rec.Names(id) {
			for i, v := range rec.Series(id, name) {
				if err := cw.Write([]string{entity, strconv.Itoa(i), name, formatFloat(v)}); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadLongCSV parses the output of WriteLongCSV back into per-entity
// series, keyed by entity id then series name.
func ReadLongCSV(r io.Reader) (map[physics.ID]map[string][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(LongHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("export: read header: %w", err)
	}
	for i, h := range LongHeader {
		if header[i] != h {
			return nil, fmt.Errorf("export: unexpected column %q", header[i])
		}
	}

	out := make(map[physics.ID]map[string][]float64)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export: line %d: %w", line, err)
		}
		id, err := strconv.ParseUint(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("export: line %d: entity: %w", line, err)
		}
		v, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("export: line %d: value: %w", line, err)
		}
		series, ok := out[physics.ID(id)]
		if !ok {
			series = make(map[string][]float64)
			out[physics.ID(id)] = series
		}
		series[rec[2]] = append(series[rec[2]], v)
	}
	return out, nil
}
