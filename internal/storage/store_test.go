package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/burgers1d/internal/config"
	"github.com/san-kum/burgers1d/internal/field"
	"github.com/san-kum/burgers1d/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Fields: []field.Field{
			{0, 1, 0, -1},
			{0.1, 0.9, -0.1, -0.9000000000000001},
		},
		Times:      []float64{0, 0.001},
		StepsTaken: 1,
		Metrics: map[string]float64{
			"energy": 1.5,
			"broken": math.NaN(),
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg := config.GetPreset("sine")
	runID, err := st.Save(cfg, testResult())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(runID, "sine_"))
	_, err = uuid.Parse(strings.TrimPrefix(runID, "sine_"))
	assert.NoError(t, err, "run id suffix should be a uuid")

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "sine", meta.Name)
	assert.Equal(t, "ssprk3", meta.Integrator)
	assert.Equal(t, 16, meta.Points)
	assert.InDelta(t, 1.0/16, meta.Dx, 1e-15)
	assert.Equal(t, 1.5, meta.Metrics["energy"])
	assert.NotContains(t, meta.Metrics, "broken")

	fields, times, err := st.LoadFields(runID)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.001}, times)
	require.Len(t, fields, 2)
	// 'g' -1 formatting is exact
	assert.Equal(t, -0.9000000000000001, fields[1][3])
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	for _, name := range []string{"sine", "riemann"} {
		_, err := st.Save(config.GetPreset(name), testResult())
		require.NoError(t, err)
	}

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "sine", runs[0].Name)
	assert.Equal(t, "riemann", runs[1].Name)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/nope")
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, _, err = st.LoadFields("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, st.ExportCSV(&bytes.Buffer{}, "missing"), ErrRunNotFound)
}

func TestUnstableRunErrors(t *testing.T) {
	st := New(t.TempDir())
	result := testResult()
	result.Unstable = true
	result.Errors = []error{&field.SimulationError{Step: 3, Time: 30, Wrapped: field.ErrUnstable}}

	runID, err := st.Save(config.GetPreset("unstable"), result)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.True(t, meta.Unstable)
	require.Len(t, meta.Errors, 1)
	assert.Contains(t, meta.Errors[0], "step 3")
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(config.GetPreset("sine"), testResult())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(&buf, runID))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, runID, data.Run.ID)
	assert.Len(t, data.Fields, 2)
	assert.Equal(t, []float64{0, 0.001}, data.Times)

	buf.Reset()
	require.NoError(t, st.ExportCSV(&buf, runID))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "time,u0,u1,u2,u3", lines[0])

	path := t.TempDir() + "/out.json"
	require.NoError(t, st.ExportJSONFile(path, runID))
}

func TestWriteFieldsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFieldsCSV(&buf, &sim.Result{}))
	assert.Empty(t, buf.String())
}
