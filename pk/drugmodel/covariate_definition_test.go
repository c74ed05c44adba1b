package drugmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-pkcore/pkcore/pk/drugmodel"
)

func TestCovariateDefinition_Validate(t *testing.T) {
	d := &drugmodel.CovariateDefinition{ID: "Weight", DataType: drugmodel.Double, DefaultValue: "70"}
	require.NoError(t, d.Validate())

	empty := &drugmodel.CovariateDefinition{}
	err := empty.Validate()
	require.Error(t, err)
}

func TestCovariateDefinition_NegativeAgeDefaultRejected(t *testing.T) {
	d := &drugmodel.CovariateDefinition{
		ID:           "Age",
		Category:     drugmodel.AgeInYears,
		DataType:     drugmodel.Double,
		DefaultValue: "-1",
	}
	err := d.Validate()
	require.Error(t, err)
}

func TestDefinitions_ValidateNoDuplicateCategories(t *testing.T) {
	ds := drugmodel.Definitions{
		{ID: "AgeA", Category: drugmodel.AgeInYears},
		{ID: "AgeB", Category: drugmodel.AgeInYears},
	}
	err := ds.ValidateNoDuplicateCategories()
	require.Error(t, err)

	ok := drugmodel.Definitions{
		{ID: "AgeA", Category: drugmodel.AgeInYears},
		{ID: "Weight", Category: drugmodel.Standard},
	}
	assert.NoError(t, ok.ValidateNoDuplicateCategories())
}

func TestDefinitions_FinalUnit(t *testing.T) {
	ds := drugmodel.Definitions{{ID: "Weight", Unit: "kg"}}
	u, ok := ds.FinalUnit("Weight")
	require.True(t, ok)
	assert.Equal(t, "kg", string(u))

	_, ok = ds.FinalUnit("Unknown")
	assert.False(t, ok)
}

func TestParseTypedValue(t *testing.T) {
	v, err := drugmodel.ParseTypedValue("true", drugmodel.Bool)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = drugmodel.ParseTypedValue("0", drugmodel.Bool)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = drugmodel.ParseTypedValue("42", drugmodel.Int)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	v, err = drugmodel.ParseTypedValue("3.14", drugmodel.Double)
	require.NoError(t, err)
	assert.InDelta(t, 3.14, v, 1e-9)

	_, err = drugmodel.ParseTypedValue("not-a-number", drugmodel.Double)
	assert.Error(t, err)
}
