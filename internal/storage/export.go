package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportData struct {
	Run   RunMetadata  `json:"run"`
	Steps []StepRecord `json:"steps"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, steps []StepRecord) error {
	data := ExportData{
		Run:   *meta,
		Steps: steps,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportCSV(w io.Writer, steps []StepRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stepsHeader); err != nil {
		return err
	}
	for _, st := range steps {
		row := []string{strconv.Itoa(st.Step), strconv.Itoa(st.State), strconv.Itoa(st.Head), st.Tape, st.Transition}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
