package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Params is the calibration parameter document the extractor produces and
// the optimizer's calibrated mode consumes.
type Params struct {
	VariantProbs map[string]float64 `json:"variant_probs" yaml:"variant_probs"`
	MeanSec      map[string]float64 `json:"mean_sec" yaml:"mean_sec"`
	StdSec       map[string]float64 `json:"std_sec" yaml:"std_sec"`
}

// WriteFile persists the params document. The encoding is chosen by file
// extension: .yaml/.yml for YAML, anything else JSON.
func (p *Params) WriteFile(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(p)
	} else {
		data, err = json.MarshalIndent(p, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing params: %w", err)
	}
	return nil
}

// ReadFile loads a params document written by WriteFile.
func ReadFile(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading params: %w", err)
	}
	params := &Params{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, params)
	} else {
		err = json.Unmarshal(data, params)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	return params, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
