package covariate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-pkcore/pkcore/pk/covariate"
	"github.com/go-pkcore/pkcore/pk/drugmodel"
	"github.com/go-pkcore/pkcore/pk/operation"
	"github.com/go-pkcore/pkcore/pk/timeutil"
	"github.com/go-pkcore/pkcore/pk/treatment"
)

func instant(y, mo, d, h, mi int) timeutil.Instant {
	return timeutil.NewInstant(y, mo, d, h, mi, 0)
}

// TestExtract_SingleGistFlip reproduces the literal S1 scenario.
func TestExtract_SingleGistFlip(t *testing.T) {
	defs := drugmodel.Definitions{
		{ID: "Gist", DataType: drugmodel.Bool, Interpolation: drugmodel.Direct, DefaultValue: "false"},
		{ID: "Weight", DataType: drugmodel.Double, Interpolation: drugmodel.Linear, Unit: "kg",
			DefaultValue: "3.5", RefreshPeriod: timeutil.NewDuration(timeutil.Days, 1)},
		{ID: "IsMale", DataType: drugmodel.Bool, Interpolation: drugmodel.Direct, DefaultValue: "true"},
		{ID: "Special", Operation: operation.NewScript("Weight*0.5 + IsMale*15", []operation.Input{
			{Name: "Weight", Type: operation.ScalarDouble},
			{Name: "IsMale", Type: operation.ScalarBool},
		})},
	}

	start := instant(2017, 8, 12, 8, 0)
	end := instant(2017, 8, 17, 8, 0)

	tr := &treatment.DrugTreatment{
		Covariates: treatment.PatientVariates{
			{ID: "Gist", Value: "true", DataType: drugmodel.Bool, EventTime: instant(2017, 8, 13, 12, 32)},
			{ID: "Gist", Value: "false", DataType: drugmodel.Bool, EventTime: instant(2017, 8, 13, 14, 32)},
		},
	}

	series, err := covariate.Extract(defs, tr, start, end)
	require.NoError(t, err)
	require.Len(t, series, 5)

	byValue := func(id string, at timeutil.Instant) (float64, bool) {
		for _, ev := range series {
			if ev.CovariateID == id && ev.EventTime.Equal(at) {
				return ev.Value, true
			}
		}
		return 0, false
	}

	v, ok := byValue("Gist", start)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = byValue("Gist", instant(2017, 8, 13, 14, 32))
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	v, ok = byValue("Weight", start)
	require.True(t, ok)
	assert.Equal(t, 3.5, v)

	v, ok = byValue("IsMale", start)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = byValue("Special", start)
	require.True(t, ok)
	assert.InDelta(t, 16.75, v, 1e-9)
}

// TestExtract_LinearWeightRamp reproduces S2's interpolated daily samples.
func TestExtract_LinearWeightRamp(t *testing.T) {
	defs := drugmodel.Definitions{
		{ID: "Gist", DataType: drugmodel.Bool, Interpolation: drugmodel.Direct, DefaultValue: "false"},
		{ID: "Weight", DataType: drugmodel.Double, Interpolation: drugmodel.Linear, Unit: "kg",
			DefaultValue: "3.5", RefreshPeriod: timeutil.NewDuration(timeutil.Days, 1)},
		{ID: "IsMale", DataType: drugmodel.Bool, Interpolation: drugmodel.Direct, DefaultValue: "true"},
	}

	start := instant(2017, 8, 12, 8, 0)
	end := instant(2017, 8, 17, 8, 0)

	tr := &treatment.DrugTreatment{
		Covariates: treatment.PatientVariates{
			{ID: "Weight", Value: "3.8", DataType: drugmodel.Double, Unit: "kg", EventTime: instant(2017, 8, 13, 9, 0)},
			{ID: "Weight", Value: "4.05", DataType: drugmodel.Double, Unit: "kg", EventTime: instant(2017, 8, 15, 21, 0)},
			{ID: "Weight", Value: "4.25", DataType: drugmodel.Double, Unit: "kg", EventTime: instant(2017, 8, 16, 21, 0)},
			{ID: "Gist", Value: "true", DataType: drugmodel.Bool, EventTime: instant(2017, 8, 13, 12, 32)},
		},
	}

	series, err := covariate.Extract(defs, tr, start, end)
	require.NoError(t, err)

	weightAt := func(at timeutil.Instant) (float64, bool) {
		var last float64
		var found bool
		for _, ev := range series {
			if ev.CovariateID == "Weight" && !ev.EventTime.After(at) {
				last = ev.Value
				found = true
			}
		}
		return last, found
	}

	v, ok := weightAt(start)
	require.True(t, ok)
	assert.InDelta(t, 3.8, v, 1e-9)

	v, ok = weightAt(instant(2017, 8, 14, 8, 0))
	require.True(t, ok)
	assert.InDelta(t, 3.89583, v, 1e-4)

	v, ok = weightAt(instant(2017, 8, 15, 8, 0))
	require.True(t, ok)
	assert.InDelta(t, 3.99583, v, 1e-4)

	v, ok = weightAt(instant(2017, 8, 16, 8, 0))
	require.True(t, ok)
	assert.InDelta(t, 4.14167, v, 1e-4)
}

// TestExtract_UnitConversion reproduces S3: a 1,000,000 mg observation
// against a kg-declared definition emits exactly 1.0.
func TestExtract_UnitConversion(t *testing.T) {
	defs := drugmodel.Definitions{
		{ID: "Weight", DataType: drugmodel.Double, Interpolation: drugmodel.Direct, Unit: "kg", DefaultValue: "0"},
	}
	start := instant(2020, 1, 1, 0, 0)
	end := instant(2020, 1, 2, 0, 0)
	tr := &treatment.DrugTreatment{
		Covariates: treatment.PatientVariates{
			{ID: "Weight", Value: "1000000", DataType: drugmodel.Double, Unit: "mg", EventTime: instant(2020, 1, 1, 6, 0)},
		},
	}

	series, err := covariate.Extract(defs, tr, start, end)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.InDelta(t, 1.0, series[0].Value, 1e-9)
	assert.True(t, series[0].EventTime.Equal(start))
}

// TestExtract_AgeSynthesis reproduces S6: AgeInDays defaulted to 20 with no
// birthdate, over a 14 civil-day window, yields 14 events one day apart.
func TestExtract_AgeSynthesis(t *testing.T) {
	defs := drugmodel.Definitions{
		{ID: "Age", Category: drugmodel.AgeInDays, DataType: drugmodel.Double, DefaultValue: "20"},
	}
	start := instant(2020, 1, 1, 0, 0)
	end := instant(2020, 1, 15, 0, 0)
	tr := &treatment.DrugTreatment{}

	series, err := covariate.Extract(defs, tr, start, end)
	require.NoError(t, err)
	require.Len(t, series, 14)

	for i, ev := range series {
		assert.InDelta(t, 20+float64(i), ev.Value, 1e-9)
		if i > 0 {
			assert.Equal(t, int64(1), timeutil.DaysBetween(series[i-1].EventTime, ev.EventTime))
		}
	}
}

func TestExtract_NilInputsFail(t *testing.T) {
	_, err := covariate.Extract(nil, &treatment.DrugTreatment{}, instant(2020, 1, 1, 0, 0), instant(2020, 1, 2, 0, 0))
	require.Error(t, err)

	_, err = covariate.Extract(drugmodel.Definitions{}, nil, instant(2020, 1, 1, 0, 0), instant(2020, 1, 2, 0, 0))
	require.Error(t, err)
}

func TestExtract_EndBeforeStartFails(t *testing.T) {
	_, err := covariate.Extract(drugmodel.Definitions{}, &treatment.DrugTreatment{}, instant(2020, 1, 2, 0, 0), instant(2020, 1, 1, 0, 0))
	require.Error(t, err)
}

func TestExtract_DuplicateCategoryFails(t *testing.T) {
	defs := drugmodel.Definitions{
		{ID: "AgeA", Category: drugmodel.AgeInYears, DataType: drugmodel.Double, DefaultValue: "1"},
		{ID: "AgeB", Category: drugmodel.AgeInYears, DataType: drugmodel.Double, DefaultValue: "2"},
	}
	_, err := covariate.Extract(defs, &treatment.DrugTreatment{}, instant(2020, 1, 1, 0, 0), instant(2020, 1, 2, 0, 0))
	require.Error(t, err)
}

func TestExtract_BirthdateAfterStartFails(t *testing.T) {
	defs := drugmodel.Definitions{
		{ID: "Age", Category: drugmodel.AgeInYears, DataType: drugmodel.Double, DefaultValue: "0"},
	}
	start := instant(2020, 1, 1, 0, 0)
	end := instant(2020, 6, 1, 0, 0)
	tr := &treatment.DrugTreatment{
		Covariates: treatment.PatientVariates{
			{ID: treatment.BirthdateCovariateName, Value: "2020-03-01", DataType: drugmodel.Date, EventTime: start},
		},
	}
	_, err := covariate.Extract(defs, tr, start, end)
	require.Error(t, err)
}
