package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/swayrig/internal/dynamo"
)

type ExportData struct {
	Name     string             `json:"name"`
	Stepper  string             `json:"stepper"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Kicks    int                `json:"kicks"`
	Labels   []string           `json:"labels"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Pointer  [][]float64        `json:"pointer"`
	Metrics  map[string]float64 `json:"metrics"`
}

func NewExportData(name, stepper string, dt, duration float64, result *dynamo.Result) ExportData {
	data := ExportData{
		Name:     name,
		Stepper:  stepper,
		Dt:       dt,
		Duration: duration,
		Steps:    len(result.Times),
		Kicks:    result.Kicks,
		Labels:   result.Labels,
		Times:    result.Times,
		States:   make([][]float64, len(result.States)),
		Pointer:  make([][]float64, len(result.Controls)),
		Metrics:  result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	for i, c := range result.Controls {
		data.Pointer[i] = c
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
