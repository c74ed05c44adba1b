package operation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-pkcore/pkcore/pk/operation"
)

func TestScript_Evaluate(t *testing.T) {
	op := operation.NewScript("Weight*0.5 + IsMale*15", []operation.Input{
		{Name: "Weight", Type: operation.ScalarDouble},
		{Name: "IsMale", Type: operation.ScalarBool},
	})

	result, ok := op.Evaluate(map[string]float64{"Weight": 3.5, "IsMale": 1})
	require.True(t, ok)
	assert.InDelta(t, 16.75, result, 1e-9)
}

func TestScript_MissingInputFails(t *testing.T) {
	op := operation.NewScript("A + B", []operation.Input{
		{Name: "A", Type: operation.ScalarDouble},
		{Name: "B", Type: operation.ScalarDouble},
	})
	_, ok := op.Evaluate(map[string]float64{"A": 1})
	assert.False(t, ok)
}

func TestScript_CompileErrorFails(t *testing.T) {
	op := operation.NewScript("A +* 1", []operation.Input{{Name: "A", Type: operation.ScalarDouble}})
	err := op.Compile()
	require.Error(t, err)
	_, ok := op.Evaluate(map[string]float64{"A": 1})
	assert.False(t, ok)
}

func TestScript_Clone_IsIndependent(t *testing.T) {
	op := operation.NewScript("A * 2", []operation.Input{{Name: "A", Type: operation.ScalarDouble}})
	clone := op.Clone()

	r1, ok1 := op.Evaluate(map[string]float64{"A": 3})
	r2, ok2 := clone.Evaluate(map[string]float64{"A": 5})
	require.True(t, ok1)
	require.True(t, ok2)
	assert.InDelta(t, 6.0, r1, 1e-9)
	assert.InDelta(t, 10.0, r2, 1e-9)
}

func TestConstant_Evaluate(t *testing.T) {
	c := operation.NewConstant(42)
	result, ok := c.Evaluate(nil)
	require.True(t, ok)
	assert.Equal(t, 42.0, result)
	assert.Empty(t, c.Inputs())

	clone := c.Clone()
	cr, ok := clone.Evaluate(nil)
	require.True(t, ok)
	assert.Equal(t, 42.0, cr)
}
