package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jackallPage = `<html><body>
<ul class="breadcrumb"><li>TOP</li><li>BASS</li><li>HARD BAIT</li></ul>
<h1 class="product-name">DD CRANK</h1>
<span class="product-name-kana">ディーディークランク</span>
<div class="main-visual"><img data-src="/bass/products/img/ddcrank/main.jpg" src="/common/img/loading.gif"></div>
<div class="product-text"><p>ディープレンジを攻略するクランクベイト。</p></div>
<div class="spec-box"><h3>DD CRANK 60</h3>
<table><tr><th>LENGTH</th><td>60mm</td></tr><tr><th>WEIGHT</th><td>3/8oz class</td></tr><tr><th>PRICE</th><td>¥2,090(税込)</td></tr></table></div>
<div class="spec-box"><h3>DD CRANK 70</h3>
<table><tr><th>LENGTH</th><td>70mm</td></tr><tr><th>WEIGHT</th><td>1/2oz class</td></tr><tr><th>PRICE</th><td>¥1,980(税込)</td></tr></table></div>
<div class="color-chart">
<div class="color-item" data-name="RTシャッド"><img data-src="/bass/products/img/ddcrank/c01.jpg" src="/common/img/loading.gif"></div>
<div class="color-item" data-name="HLギル"><img data-src="/bass/products/img/ddcrank/c02.jpg"></div>
</div>
</body></html>`

func TestJackallExtract(t *testing.T) {
	ext := fixtureExtractor(jackallSource, newJackallCrawler, jackallPage)

	rec, err := ext.Extract(context.Background(), "https://www.jackall.co.jp/bass/products/lure/hard-bait/dd-crank/")
	require.NoError(t, err)

	assert.Equal(t, "dd-crank", rec.Slug)
	assert.Equal(t, "crankbait", rec.Type)
	assert.Equal(t, []string{"black bass"}, rec.TargetFish)
	// the cheapest size is the list price
	assert.Equal(t, 1980, rec.Price)
	assert.Equal(t, []float64{10.6, 14.2}, rec.Weights)
	require.NotNil(t, rec.Length)
	assert.Equal(t, 60, *rec.Length)
	assert.Equal(t, "https://www.jackall.co.jp/bass/products/img/ddcrank/main.jpg", rec.MainImage)
	require.Len(t, rec.Colors, 2)
	assert.Equal(t, "RTシャッド", rec.Colors[0].Name)
	assert.Equal(t, "https://www.jackall.co.jp/bass/products/img/ddcrank/c01.jpg", rec.Colors[0].ImageURL)
}
