package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertMatrix(t *testing.T, want, got Matrix) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "index %d: %v != %v", i, want, got)
	}
}

func TestMultiply(t *testing.T) {
	m := Identity.Translate(10, 20).Scale(2, 3)
	assertMatrix(t, Matrix{2, 0, 0, 3, 10, 20}, m)
	assert.Equal(t, Point{12, 23}, m.Apply(Point{1, 1}))
	assert.Equal(t, Point{2, 3}, m.ApplyVector(Point{1, 1}))
}

func TestRotateExact(t *testing.T) {
	assert.Equal(t, Matrix{0, 1, -1, 0, 0, 0}, RotateMatrix(90))
	assert.Equal(t, Matrix{-1, 0, 0, -1, 0, 0}, RotateMatrix(180))
	assert.Equal(t, Matrix{0, -1, 1, 0, 0, 0}, RotateMatrix(-90))
	assert.Equal(t, Identity, RotateMatrix(0))
}

func TestInvert(t *testing.T) {
	m := Compose(ComposeOptions{TranslateX: 5, TranslateY: -3, Angle: 30, ScaleX: 2, ScaleY: 0.5, SkewX: 10})
	assertMatrix(t, Identity, m.Multiply(m.Invert()))
	assert.Equal(t, Identity, Matrix{0, 0, 0, 0, 1, 1}.Invert())
}

func TestCompose(t *testing.T) {
	m := Compose(ComposeOptions{TranslateX: 10.5, TranslateY: 23.1, ScaleX: 1, ScaleY: 1})
	assert.Equal(t, Matrix{1, 0, 0, 1, 10.5, 23.1}, m)

	flipped := Compose(ComposeOptions{ScaleX: 2, ScaleY: 1, FlipY: true})
	assert.Equal(t, Matrix{2, 0, 0, -1, 0, 0}, flipped)
}

func TestToSVG(t *testing.T) {
	m := Matrix{1, 0, 0, 1, 10.5, 23.1}
	assert.Equal(t, "matrix(1 0 0 1 10.5 23.1)", m.ToSVG(2))
	assert.Equal(t, "matrix(1 0 0 1 11 23)", m.ToSVG(0))
}

func TestSizeAfterTransform(t *testing.T) {
	s := SizeAfterTransform(10, 20, RotateMatrix(90))
	assert.InDelta(t, 20, s.X, 1e-9)
	assert.InDelta(t, 10, s.Y, 1e-9)
}

func TestDecompose(t *testing.T) {
	for _, opts := range []ComposeOptions{
		{TranslateX: 10, TranslateY: 20, ScaleX: 1, ScaleY: 1},
		{TranslateX: -4, TranslateY: 2.5, Angle: 30, ScaleX: 2, ScaleY: 0.5},
		{Angle: -120, ScaleX: 1.5, ScaleY: 3, SkewX: 15},
		{ScaleX: 2, ScaleY: -1},
	} {
		got := Decompose(Compose(opts))
		assert.InDelta(t, opts.TranslateX, got.TranslateX, 1e-9)
		assert.InDelta(t, opts.TranslateY, got.TranslateY, 1e-9)
		assert.InDelta(t, opts.Angle, got.Angle, 1e-9)
		assert.InDelta(t, opts.ScaleX, got.ScaleX, 1e-9)
		assert.InDelta(t, opts.ScaleY, got.ScaleY, 1e-9)
		assert.InDelta(t, opts.SkewX, got.SkewX, 1e-9)
		assertMatrix(t, Compose(opts), Compose(got))
	}

	assert.Equal(t, ComposeOptions{TranslateX: 1, TranslateY: 2}, Decompose(Matrix{0, 0, 0, 0, 1, 2}))
}
