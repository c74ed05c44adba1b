package parameter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-pkcore/pkcore/pk/covariate"
	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/operation"
	"github.com/go-pkcore/pkcore/pk/parameter"
	"github.com/go-pkcore/pkcore/pk/timeutil"
)

func paramValue(t *testing.T, ev parameter.ParameterSetEvent, id string) float64 {
	t.Helper()
	for _, p := range ev.Parameters {
		if p.ParameterID == id {
			return p.Value
		}
	}
	require.Failf(t, "parameter not present", "%s not found at %s", id, ev.EventTime)
	return 0
}

// TestExtract_OneChangingCovariate reproduces S5: Gist flips from 0 to 1 at
// t1, Weight and Height hold steady; two computed parameters depend on
// them. Expect exactly two ParameterSetEvents, the second carrying only the
// parameters that actually changed.
func TestExtract_OneChangingCovariate(t *testing.T) {
	start := timeutil.NewInstant(2020, 1, 1, 0, 0, 0)
	t1 := timeutil.NewInstant(2020, 1, 2, 0, 0, 0)
	end := timeutil.NewInstant(2020, 1, 10, 0, 0, 0)

	series := covariate.Series{
		{CovariateID: "Gist", EventTime: start, Value: 0},
		{CovariateID: "Weight", EventTime: start, Value: 15},
		{CovariateID: "Height", EventTime: start, Value: 111},
		{CovariateID: "Gist", EventTime: t1, Value: 1},
	}

	defs := drugmodel.ParameterDefinitions{
		{ID: "NC_A", Value: 1234},
		{ID: "NC_B", Value: 5678},
		{ID: "C_C", Operation: operation.NewScript("Gist*15+Weight", []operation.Input{
			{Name: "Gist", Type: operation.ScalarBool}, {Name: "Weight", Type: operation.ScalarDouble},
		})},
		{ID: "C_D", Operation: operation.NewScript("Gist*2+Height", []operation.Input{
			{Name: "Gist", Type: operation.ScalarBool}, {Name: "Height", Type: operation.ScalarDouble},
		})},
	}

	series2 := append(covariate.Series(nil), series...)
	out, err := parameter.Extract(series2, defs, start, end)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, out[0].EventTime.Equal(start))
	require.Len(t, out[0].Parameters, 4)
	assert.Equal(t, float64(1234), paramValue(t, out[0], "NC_A"))
	assert.Equal(t, float64(5678), paramValue(t, out[0], "NC_B"))
	assert.Equal(t, float64(15), paramValue(t, out[0], "C_C"))
	assert.Equal(t, float64(111), paramValue(t, out[0], "C_D"))

	assert.True(t, out[1].EventTime.Equal(t1))
	require.Len(t, out[1].Parameters, 2)
	assert.Equal(t, float64(30), paramValue(t, out[1], "C_C"))
	assert.Equal(t, float64(113), paramValue(t, out[1], "C_D"))
}

func TestExtract_BackPropagatesPreStartObservations(t *testing.T) {
	start := timeutil.NewInstant(2020, 1, 1, 0, 0, 0)
	end := timeutil.NewInstant(2020, 1, 10, 0, 0, 0)
	before := timeutil.NewInstant(2019, 12, 1, 0, 0, 0)
	evenEarlier := timeutil.NewInstant(2019, 11, 1, 0, 0, 0)

	series := covariate.Series{
		{CovariateID: "Weight", EventTime: evenEarlier, Value: 10},
		{CovariateID: "Weight", EventTime: before, Value: 20},
	}
	defs := drugmodel.ParameterDefinitions{
		{ID: "C_W", Operation: operation.NewScript("Weight", []operation.Input{{Name: "Weight", Type: operation.ScalarDouble}})},
	}

	out, err := parameter.Extract(series, defs, start, end)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].EventTime.Equal(start))
	assert.Equal(t, float64(20), paramValue(t, out[0], "C_W"))
}

func TestExtract_RejectsUnknownCovariateAfterFirstBucket(t *testing.T) {
	start := timeutil.NewInstant(2020, 1, 1, 0, 0, 0)
	end := timeutil.NewInstant(2020, 1, 10, 0, 0, 0)
	t1 := timeutil.NewInstant(2020, 1, 5, 0, 0, 0)

	series := covariate.Series{
		{CovariateID: "Weight", EventTime: start, Value: 10},
		{CovariateID: "Creatinine", EventTime: t1, Value: 1.2},
	}
	defs := drugmodel.ParameterDefinitions{{ID: "NC_A", Value: 1}}

	_, err := parameter.Extract(series, defs, start, end)
	require.Error(t, err)
}

func TestExtract_EndBeforeStartFails(t *testing.T) {
	start := timeutil.NewInstant(2020, 1, 10, 0, 0, 0)
	end := timeutil.NewInstant(2020, 1, 1, 0, 0, 0)
	_, err := parameter.Extract(covariate.Series{}, drugmodel.ParameterDefinitions{}, start, end)
	require.Error(t, err)
}

func TestExtractPopulationOnly(t *testing.T) {
	defs := drugmodel.ParameterDefinitions{
		{ID: "NC_A", Value: 1234},
		{ID: "NC_B", Value: 5678},
	}
	out := parameter.ExtractPopulationOnly(defs)
	require.Len(t, out, 1)
	assert.Equal(t, float64(1234), paramValue(t, out[0], "NC_A"))
	assert.Equal(t, float64(5678), paramValue(t, out[0], "NC_B"))
}

func TestBuildFullSet_FoldsDeltasForward(t *testing.T) {
	start := timeutil.NewInstant(2020, 1, 1, 0, 0, 0)
	t1 := timeutil.NewInstant(2020, 1, 2, 0, 0, 0)

	delta := parameter.ParameterSetSeries{
		{EventTime: start, Parameters: []parameter.ParameterEvent{{ParameterID: "A", Value: 1}, {ParameterID: "B", Value: 2}}},
		{EventTime: t1, Parameters: []parameter.ParameterEvent{{ParameterID: "A", Value: 3}}},
	}

	full := parameter.BuildFullSet(delta)
	require.Len(t, full, 2)
	require.Len(t, full[0].Parameters, 2)
	require.Len(t, full[1].Parameters, 2)
	assert.Equal(t, float64(3), paramValue(t, full[1], "A"))
	assert.Equal(t, float64(2), paramValue(t, full[1], "B"))
}
