package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"br becomes newline", "Length<br>Weight", "Length\nWeight"},
		{"tags stripped", `<p class="x">Jerk <b>bait</b></p>`, "Jerk bait"},
		{"entities decoded", "Tom &amp; Jerry&nbsp;&#x30DF;", "Tom & Jerry ミ"},
		{"double encoded", "A &amp;amp; B", "A & B"},
		{"double-encoded tags stripped", "&amp;lt;b&amp;gt;Bold&amp;lt;/b&amp;gt; minnow", "Bold minnow"},
		{"decoded brackets removed", "3 &lt; 5", "3 5"},
		{"script dropped", "<script>var a=1;</script>Name", "Name"},
		{"whitespace collapsed", "  a   b \n\n\n  c  ", "a b\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanHTML(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ミノー", Truncate("ミノーです", 3))
	assert.Equal(t, "short", Truncate("short", 500))
}

func TestColorKey(t *testing.T) {
	assert.Equal(t, ColorKey("Red"), ColorKey("Red "))
	assert.Equal(t, ColorKey("Chart  Back"), ColorKey("chart back"))
	assert.Equal(t, ColorKey("ＲＥＤ"), ColorKey("red"))
	assert.NotEqual(t, ColorKey("Red"), ColorKey("Blue"))
}

func TestAbsURL(t *testing.T) {
	base := "https://maker.example.jp/products/minnow/"
	assert.Equal(t, "https://maker.example.jp/img/a.jpg", AbsURL(base, "/img/a.jpg"))
	assert.Equal(t, "https://maker.example.jp/products/minnow/b.jpg", AbsURL(base, "b.jpg"))
	assert.Equal(t, "https://cdn.example.com/c.jpg", AbsURL(base, "//cdn.example.com/c.jpg"))
	assert.Equal(t, "https://x.example.com/d.jpg", AbsURL(base, "https://x.example.com/d.jpg"))
	assert.Equal(t, "", AbsURL(base, ""))
	assert.Equal(t, "", AbsURL(base, "data:image/gif;base64,R0lGOD"))
}
