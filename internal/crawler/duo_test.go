package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealmungchi/lurecrawler/internal/lure"
)

const duoPage = `<html><head>
<meta name="description" content="meta description">
</head><body>
<nav class="breadcrumb"><a>HOME</a> &gt; <a>BASS</a> &gt; <a>REALIS</a></nav>
<h1 class="product-title">REALIS JERKBAIT 120SP</h1>
<p class="product-kana">レアリス ジャークベイト120SP</p>
<div class="product-main"><img src="/images/products/realis120sp/main.jpg"></div>
<div class="product-desc"><p></p><p>ただ巻きでもジャークでも<br>しっかり泳ぐ。</p></div>
<table class="spec-table">
<tr><th>Length</th><td>120mm</td></tr>
<tr><th>Weight</th><td>18.0g</td></tr>
<tr><th>Type</th><td>Suspend</td></tr>
<tr><th>Price</th><td>¥2,090(税込)</td></tr>
</table>
<ul class="color-list">
<li><img src="/images/colors/ccc3069.jpg"><p class="color-name">CCC3069 マットチャート</p></li>
<li><img src="/images/colors/ada3033.jpg"><p class="color-name">ADA3033 ワカサギ</p></li>
<li><img src="/images/colors/ccc3069_b.jpg"><p class="color-name">CCC3069  マットチャート</p></li>
</ul>
</body></html>`

func TestDuoExtract(t *testing.T) {
	url := "https://www.duo-inc.co.jp/product/bass/realis-jerkbait-120sp/"
	ext := fixtureExtractor(duoSource, newDuoCrawler, duoPage)

	rec, err := ext.Extract(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, "REALIS JERKBAIT 120SP", rec.Name)
	assert.Equal(t, "レアリス ジャークベイト120SP", rec.NameKana)
	assert.Equal(t, "realis-jerkbait-120sp", rec.Slug)
	assert.Equal(t, "DUO", rec.Manufacturer)
	assert.Equal(t, "jerkbait", rec.Type)
	assert.Equal(t, []string{"black bass"}, rec.TargetFish)
	assert.Equal(t, 2090, rec.Price)
	assert.Equal(t, []float64{18}, rec.Weights)
	require.NotNil(t, rec.Length)
	assert.Equal(t, 120, *rec.Length)
	assert.Equal(t, "ただ巻きでもジャークでも\nしっかり泳ぐ。", rec.Description)
	assert.Equal(t, "https://www.duo-inc.co.jp/images/products/realis120sp/main.jpg", rec.MainImage)
	assert.Equal(t, []lure.Color{
		{Name: "CCC3069 マットチャート", ImageURL: "https://www.duo-inc.co.jp/images/colors/ccc3069.jpg"},
		{Name: "ADA3033 ワカサギ", ImageURL: "https://www.duo-inc.co.jp/images/colors/ada3033.jpg"},
	}, rec.Colors)
}

func TestDuoExtractMissingNameIsFatal(t *testing.T) {
	ext := fixtureExtractor(duoSource, newDuoCrawler, `<html><body><table class="spec-table"></table></body></html>`)

	_, err := ext.Extract(context.Background(), "https://www.duo-inc.co.jp/product/bass/x/")
	assert.Error(t, err)
}

const duoSizesPage = `<html><body>
<h1 class="product-title">SPEARHEAD RYUKI</h1>
<table class="spec-table">
<tr><th>Length</th><td>59mm</td></tr>
<tr><th>Weight</th><td>4.5g</td></tr>
<tr><th>Price</th><td>¥1,650(税込)</td></tr>
</table>
<table class="spec-table">
<tr><th>Length</th><td>62mm</td></tr>
<tr><th>Weight</th><td>6.6g</td></tr>
<tr><th>Price</th><td>¥1,760(税込)</td></tr>
</table>
<table class="spec-table">
<tr><th>Length</th><td>68mm</td></tr>
<tr><th>Weight</th><td>14g(1/2oz)</td></tr>
</table>
<ul class="color-list">
<li><img src="/images/colors/a.jpg"><p class="color-name">ヤマメ</p></li>
</ul>
</body></html>`

func TestDuoExtractTablePerSize(t *testing.T) {
	ext := fixtureExtractor(duoSource, newDuoCrawler, duoSizesPage)

	rec, err := ext.Extract(context.Background(), "https://www.duo-inc.co.jp/product/trout/spearhead-ryuki/")
	require.NoError(t, err)

	assert.Equal(t, []float64{4.5, 6.6, 14}, rec.Weights)
	require.NotNil(t, rec.Length)
	assert.Equal(t, 59, *rec.Length)
	assert.Equal(t, 1650, rec.Price)
}
