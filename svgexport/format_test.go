package svgexport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNum(t *testing.T) {
	for _, test := range []struct {
		v      float64
		digits int
		want   string
	}{
		{12.566, 2, "12.57"},
		{-13.6496, 2, "-13.65"},
		{38.782, 2, "38.78"},
		{-10, 2, "-10"},
		{10.5, 0, "11"},
		{-10.5, 0, "-11"},
		{0.125, 2, "0.13"},
		{2.5, 0, "3"},
		{-0.0001, 2, "0"},
		{math.Copysign(0, -1), 4, "0"},
		{1e-7, 4, "0"},
		{244.44, 0, "244"},
		{-122.22, 0, "-122"},
		{1.23456789, 4, "1.2346"},
		{100, 4, "100"},
		{0.1 + 0.2, 4, "0.3"},
		{3, -1, "3"},
	} {
		assert.Equal(t, test.want, Num(test.v, test.digits), "%v with %d digits", test.v, test.digits)
	}
	assert.Equal(t, "NaN", Num(math.NaN(), 2))
}

func TestRaw(t *testing.T) {
	assert.Equal(t, "-100", Raw(-100))
	a, b := 0.1, 0.2
	assert.Equal(t, "0.30000000000000004", Raw(a+b))
	assert.Equal(t, "1e+21", Raw(1e21))
	assert.Equal(t, "-1.5e+22", Raw(-1.5e22))
	assert.Equal(t, "1e-7", Raw(1e-7))
	assert.Equal(t, "0.000001", Raw(1e-6))
	assert.Equal(t, "123456789012345680000", Raw(123456789012345678901))
	assert.Equal(t, "0", Raw(math.Copysign(0, -1)))
	assert.Equal(t, "Infinity", Raw(math.Inf(1)))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; &quot;c&quot; &apos;d&apos;", EscapeXML(`a <b> & "c" 'd'`))
}
