package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealmungchi/lurecrawler/internal/lure"
)

const decoyPage = `<html><body>
<h1 class="product_title">SV-55 ロックヘッド</h1>
<div class="product_photo"><img src="/product/img/sv55.jpg"></div>
<div class="product_text"><p>ロックフィッシュ用のヘッド。</p></div>
<table class="spec">
<tr><th>サイズ</th><th>重量</th><th>入数</th><th>価格</th></tr>
<tr><td>#1/0</td><td>3.5g</td><td>3</td><td>¥550(税別)</td></tr>
<tr><td>#1/0</td><td>5g</td><td>3</td><td>¥550(税別)</td></tr>
<tr><td>#2/0</td><td>7g</td><td>3</td><td>¥600(税別)</td></tr>
</table>
</body></html>`

func TestDecoyExtractSingleFinish(t *testing.T) {
	ext := fixtureExtractor(decoySource, newDecoyCrawler, decoyPage)

	rec, err := ext.Extract(context.Background(), "https://www.decoy.jp/product/sv-55/")
	require.NoError(t, err)

	assert.Equal(t, "sv-55", rec.Slug)
	assert.Equal(t, "jig head", rec.Type)
	assert.Equal(t, []string{"rockfish"}, rec.TargetFish)
	assert.Equal(t, 605, rec.Price)
	assert.Equal(t, []float64{3.5, 5, 7}, rec.Weights)
	assert.Nil(t, rec.Length)
	assert.Equal(t, []lure.Color{
		{Name: lure.DefaultColorName, ImageURL: "https://www.decoy.jp/product/img/sv55.jpg"},
	}, rec.Colors)
}
