package calibration_test

import (
	"errors"
	"strings"
	"testing"

	"hospital-planner/calibration"
	customerrors "hospital-planner/errors"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := map[string]struct {
		input        string
		expectedMean map[string]float64
		expectedStd  map[string]float64
	}{
		"Two_Intake_Rows": {
			input: `case_id,event_label,start_time,completion_time
c1,INTAKE,2018-01-01 08:00:00,2018-01-01 08:30:00
c2,INTAKE,2018-01-01 09:00:00,2018-01-01 09:36:40
`,
			expectedMean: map[string]float64{"INTAKE": 2000.0},
			expectedStd:  map[string]float64{"INTAKE": 282.84},
		},
		"No_Durations_Falls_Back": {
			input: `case_id,event_label,start_time,completion_time
c1,SURGERY,2018-01-01 08:00:00,
c2,SURGERY,2018-01-02 09:00:00,
`,
			expectedMean: map[string]float64{"SURGERY": 3600.0},
			expectedStd:  map[string]float64{"SURGERY": 1800.0},
		},
		"Single_Sample_Keeps_Mean": {
			input: `case_id,event_label,start_time,completion_time
c1,NURSING,2018-01-01 08:00:00,2018-01-01 08:10:00
`,
			expectedMean: map[string]float64{"NURSING": 600.0},
			expectedStd:  map[string]float64{"NURSING": 1800.0},
		},
		"RFC3339_Timestamps": {
			input: `case_id,event_label,start_time,completion_time
c1,INTAKE,2018-01-01T08:00:00Z,2018-01-01T08:30:00Z
`,
			expectedMean: map[string]float64{"INTAKE": 1800.0},
			expectedStd:  map[string]float64{"INTAKE": 1800.0},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			params, err := calibration.Extract(strings.NewReader(tc.input))
			assert.NoError(t, err)
			for activity, mean := range tc.expectedMean {
				assert.InDelta(t, mean, params.MeanSec[activity], 0.1, "mean of %s", activity)
			}
			for activity, std := range tc.expectedStd {
				assert.InDelta(t, std, params.StdSec[activity], 0.1, "std of %s", activity)
			}
		})
	}
}

func TestExtractVariantProbs(t *testing.T) {
	input := `case_id,event_label,start_time,completion_time
c1,INTAKE,2018-01-01 08:00:00,2018-01-01 08:30:00
c1,SURGERY,2018-01-01 10:00:00,2018-01-01 12:00:00
c2,INTAKE,2018-01-02 08:00:00,2018-01-02 08:20:00
c2,SURGERY,2018-01-02 10:00:00,2018-01-02 11:00:00
c3,INTAKE,2018-01-03 08:00:00,2018-01-03 08:20:00
`

	params, err := calibration.Extract(strings.NewReader(input))
	assert.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, params.VariantProbs["INTAKE,SURGERY"], 1e-9)
	assert.InDelta(t, 1.0/3.0, params.VariantProbs["INTAKE"], 1e-9)

	// Activities are ordered by start time, not row order.
	shuffled := `case_id,event_label,start_time,completion_time
c1,SURGERY,2018-01-01 10:00:00,2018-01-01 12:00:00
c1,INTAKE,2018-01-01 08:00:00,2018-01-01 08:30:00
`
	params, err = calibration.Extract(strings.NewReader(shuffled))
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, params.VariantProbs["INTAKE,SURGERY"], 1e-9)
}

func TestExtractErrors(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedError error
	}{
		"Too_Few_Fields": {
			input:         "c1,INTAKE,2018-01-01 08:00:00\n",
			expectedError: customerrors.ErrInvalidFieldCount,
		},
		"Bad_Start_Time": {
			input:         "c1,INTAKE,yesterday,2018-01-01 08:30:00\n",
			expectedError: customerrors.ErrInvalidStartTime,
		},
		"Bad_Completion_Time": {
			input:         "c1,INTAKE,2018-01-01 08:00:00,later\n",
			expectedError: customerrors.ErrInvalidCompletionTime,
		},
		"Empty_Activity": {
			input:         "c1,,2018-01-01 08:00:00,2018-01-01 08:30:00\n",
			expectedError: customerrors.ErrEmptyActivity,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := calibration.Extract(strings.NewReader(tc.input))
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tc.expectedError), "got: %v", err)

			var parseErr *customerrors.ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, 1, parseErr.Line)
		})
	}
}

func TestExtractEmptyLog(t *testing.T) {
	params, err := calibration.Extract(strings.NewReader("case_id,event_label,start_time,completion_time\n"))
	assert.NoError(t, err)
	assert.Empty(t, params.MeanSec)
	assert.Empty(t, params.VariantProbs)
}
