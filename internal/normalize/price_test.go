package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"tax included marker before", "税込価格：2,420円", 2420},
		{"tax included marker after", "2,420円税込", 2420},
		{"parenthesized tax included", "¥2,200(税込)", 2200},
		{"fullwidth parenthesized", "￥２，２００（税込）", 2200},
		{"tax included inside annotation", "本体価格 ¥2,000(税込¥2,200)", 2200},
		{"tax excluded suffix", "1,970円 (税別)", 2167},
		{"plus tax", "¥1,800+税", 1980},
		{"body price prefix", "本体価格 ¥9,000", 9900},
		{"tax excluded before", "税抜 1,500円", 1650},
		{"bare yen sign", "¥3,300", 3300},
		{"bare yen suffix", "価格 880円", 880},
		{"english tax in", "¥1,650 (tax in)", 1650},
		{"nothing", "オープン価格", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestParsePriceTaxRounding(t *testing.T) {
	for _, v := range []int{1, 99, 1234, 1970, 45555} {
		assert.Equal(t, AddTax(v), ParsePrice(formatYen(v)+"(税別)"))
		assert.Equal(t, v, ParsePrice(formatYen(v)+"(税込)"))
	}
	assert.Equal(t, 2167, AddTax(1970))
	assert.Equal(t, 1, AddTax(1))
	assert.Equal(t, 6, AddTax(5))
}

func formatYen(v int) string {
	return "¥" + itoa(v)
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}
