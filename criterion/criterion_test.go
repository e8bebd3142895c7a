package criterion

import (
	"testing"

	"github.com/matryer/is"
)

func TestMark(t *testing.T) {
	is := is.New(t)
	m := Mark{Threshold: 5}
	is.True(!m.ShouldStop([]float64{1, 4.99, 3}))
	is.True(m.ShouldStop([]float64{1, 5, 3}))
	is.True(m.ShouldStop([]float64{7}))
	is.True(!m.ShouldStop(nil))
}

func TestPlateau(t *testing.T) {
	is := is.New(t)
	p := NewPlateau(2)
	is.True(!p.ShouldStop([]float64{1, 2})) // first call, nothing to compare
	is.Equal(p.Stagnant(), 0)
	is.True(!p.ShouldStop([]float64{2, 0})) // same best
	is.Equal(p.Stagnant(), 1)
	is.True(!p.ShouldStop([]float64{3, 0})) // improvement resets
	is.Equal(p.Stagnant(), 0)
	is.True(!p.ShouldStop([]float64{3, 1}))
	is.True(p.ShouldStop([]float64{0, 3}))
	is.Equal(p.Stagnant(), 2)
}

func TestPlateauResetsOnDecline(t *testing.T) {
	is := is.New(t)
	p := NewPlateau(1)
	is.True(!p.ShouldStop([]float64{5}))
	is.True(!p.ShouldStop([]float64{4}))
	is.True(p.ShouldStop([]float64{4}))

	p.Reset()
	is.True(!p.ShouldStop([]float64{4}))
}

func TestIterations(t *testing.T) {
	is := is.New(t)
	it := NewIterations(3)
	for i := 0; i < 3; i++ {
		is.True(!it.ShouldStop(nil))
	}
	is.True(it.ShouldStop(nil))
	is.True(it.ShouldStop([]float64{1e9}))

	it.Reset()
	is.True(!it.ShouldStop(nil))

	is.True(NewIterations(0).ShouldStop(nil))
}

func TestAnyConsultsEveryMember(t *testing.T) {
	is := is.New(t)
	it := NewIterations(10)
	a := Any{Mark{Threshold: 2}, it}
	is.True(!a.ShouldStop([]float64{1}))
	is.True(a.ShouldStop([]float64{2}))
	// the iteration counter advanced on both calls
	is.Equal(it.calls, 2)
	is.True(!Any{}.ShouldStop([]float64{1}))
}
