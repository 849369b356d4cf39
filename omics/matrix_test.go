package omics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeightMatrix_Validation(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		pathways []string
		rows     [][]float64
	}{
		{"duplicate identifier", []string{"A", "A"}, []string{"P1"}, [][]float64{{1}, {2}}},
		{"empty identifier", []string{"A", ""}, []string{"P1"}, [][]float64{{1}, {2}}},
		{"duplicate pathway", []string{"A"}, []string{"P1", "P1"}, [][]float64{{1, 2}}},
		{"ragged row", []string{"A", "B"}, []string{"P1", "P2"}, [][]float64{{1, 2}, {3}}},
		{"NaN coefficient", []string{"A"}, []string{"P1"}, [][]float64{{math.NaN()}}},
		{"Inf coefficient", []string{"A"}, []string{"P1"}, [][]float64{{math.Inf(-1)}}},
		{"row count mismatch", []string{"A", "B"}, []string{"P1"}, [][]float64{{1}}},
		{"no pathways", []string{"A"}, nil, [][]float64{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeightMatrix(tt.ids, tt.pathways, tt.rows)
			require.ErrorIs(t, err, ErrInvalidWeightMatrix)
		})
	}
}

func TestNewWeightMatrix_Index(t *testing.T) {
	wm, err := NewWeightMatrix(
		[]string{"A", "B", "C"},
		[]string{"P1", "P2"},
		[][]float64{{1, 0.5}, {0, 2}, {-1, 3}},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, wm.NumFeatures())
	assert.Equal(t, []string{"P1", "P2"}, wm.Pathways())

	i, ok := wm.Index("C")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, 3.0, wm.At(i, 1))

	_, ok = wm.Index("Z")
	assert.False(t, ok)
}

func TestFeatureMatrix_CompleteCases(t *testing.T) {
	fm, err := NewFeatureMatrix(
		[]string{"A", "B", "C"},
		[]string{"s1", "s2"},
		[][]float64{{1, 10}, {NA, 20}, {3, NA}},
	)
	require.NoError(t, err)

	ids, values, err := fm.CompleteCases(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, ids)
	assert.Equal(t, []float64{1, 3}, values)

	ids, values, err = fm.CompleteCases(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, ids)
	assert.Equal(t, []float64{10, 20}, values)

	_, _, err = fm.CompleteCases(2)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewFeatureMatrix_Validation(t *testing.T) {
	_, err := NewFeatureMatrix([]string{"A"}, []string{"s1", "s1"}, [][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrInvalidFeatureMatrix)

	_, err = NewFeatureMatrix([]string{""}, []string{"s1"}, [][]float64{{1}})
	assert.ErrorIs(t, err, ErrInvalidFeatureMatrix)

	_, err = NewFeatureMatrix(nil, []string{"s1"}, nil)
	assert.ErrorIs(t, err, ErrInvalidFeatureMatrix)
}

func TestFeatureMatrix_CopiesInput(t *testing.T) {
	samples := []string{"s1"}
	rows := [][]float64{{1}}
	fm, err := NewFeatureMatrix([]string{"A"}, samples, rows)
	require.NoError(t, err)

	samples[0] = "changed"
	rows[0][0] = 99

	assert.Equal(t, "s1", fm.Sample(0))
	_, values, err := fm.CompleteCases(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, values)
}
