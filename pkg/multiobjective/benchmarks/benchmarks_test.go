package benchmarks

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

func evaluate(p framework.Problem, x []float64) framework.ObjectiveSpacePoint {
	f := make(framework.ObjectiveSpacePoint, len(p.ObjectiveFuncs()))
	for i, fn := range p.ObjectiveFuncs() {
		f[i] = fn(x)
	}
	return f
}

func TestZDT1(t *testing.T) {
	p := NewZDT1(30)
	assert.Len(t, p.Bounds(), 30)

	// With all tail variables at zero g = 1 and the point is on the front.
	x := make([]float64, 30)
	x[0] = 0.25
	f := evaluate(p, x)
	assert.InDelta(t, 0.25, f[0], 1e-12)
	assert.InDelta(t, 0.5, f[1], 1e-12)

	// All tail variables at one gives g = 10.
	for i := 1; i < 30; i++ {
		x[i] = 1
	}
	f = evaluate(p, x)
	assert.InDelta(t, 10*(1-math.Sqrt(0.025)), f[1], 1e-9)

	front := p.TrueParetoFront(11)
	require.Len(t, front, 11)
	assert.Equal(t, framework.ObjectiveSpacePoint{0, 1}, front[0])
	assert.Equal(t, framework.ObjectiveSpacePoint{1, 0}, front[10])
}

func TestDTLZ1OptimalPointsSumToHalf(t *testing.T) {
	p := NewDTLZ1(7, 3)
	x := []float64{0.3, 0.8, 0.5, 0.5, 0.5, 0.5, 0.5}
	f := evaluate(p, x)
	assert.InDelta(t, 0.5, floats.Sum(f), 1e-9)

	for _, point := range p.TrueParetoFront(91) {
		assert.InDelta(t, 0.5, floats.Sum(point), 1e-9)
	}
}

func TestDTLZ2OptimalPointsOnSphere(t *testing.T) {
	p := NewDTLZ2(12, 3)
	x := []float64{0.3, 0.8, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	f := evaluate(p, x)
	assert.InDelta(t, 1.0, floats.Norm(f, 2), 1e-9)

	front := p.TrueParetoFront(100)
	assert.Len(t, front, 91)
	for _, point := range front {
		assert.InDelta(t, 1.0, floats.Norm(point, 2), 1e-9)
	}
}

func TestLinear(t *testing.T) {
	p := NewLinear()
	f := evaluate(p, []float64{0.3})
	assert.InDelta(t, 1.0, floats.Sum(f), 1e-12)
	assert.Len(t, p.TrueParetoFront(5), 5)
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		vars     int
		objs     int
		wantVars int
		wantErr  bool
	}{
		{name: "zdt1", objs: 2, wantVars: 30},
		{name: "ZDT1", vars: 10, objs: 2, wantVars: 10},
		{name: "zdt1", objs: 3, wantErr: true},
		{name: "dtlz1", objs: 3, wantVars: 7},
		{name: "dtlz2", objs: 3, wantVars: 12},
		{name: "dtlz2", vars: 2, objs: 3, wantErr: true},
		{name: "linear", objs: 2, wantVars: 1},
		{name: "linear", objs: 3, wantErr: true},
		{name: "unknown", objs: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Get(tt.name, tt.vars, tt.objs)
			if tt.wantErr {
				assert.True(t, errors.Is(err, framework.ErrInvalidConfiguration), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, p.Bounds(), tt.wantVars)
			assert.Len(t, p.ObjectiveFuncs(), tt.objs)
		})
	}
}
