package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/pidlab/internal/sim"
)

// WriteCSV emits the trace with a header row:
// time,setpoint,output,control.
func WriteCSV(w io.Writer, trace []sim.Sample) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "setpoint", "output", "control"}); err != nil {
		return err
	}

	for _, s := range trace {
		row := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.Setpoint, 'f', 6, 64),
			strconv.FormatFloat(s.Output, 'f', 6, 64),
			strconv.FormatFloat(s.Control, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type exportData struct {
	Meta  RunMetadata `json:"meta"`
	Times []float64   `json:"times"`
	// Parallel arrays keep the file compact for long traces.
	Setpoints []float64 `json:"setpoints"`
	Outputs   []float64 `json:"outputs"`
	Controls  []float64 `json:"controls"`
}

// WriteJSON emits run metadata plus the full trace as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, trace []sim.Sample) error {
	data := exportData{
		Meta:      meta,
		Times:     make([]float64, len(trace)),
		Setpoints: make([]float64, len(trace)),
		Outputs:   make([]float64, len(trace)),
		Controls:  make([]float64, len(trace)),
	}
	for i, s := range trace {
		data.Times[i] = s.T
		data.Setpoints[i] = s.Setpoint
		data.Outputs[i] = s.Output
		data.Controls[i] = s.Control
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
