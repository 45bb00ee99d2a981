package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shimanoPage = `<html><head>
<script type="application/ld+json">
[{"@type":"BreadcrumbList","itemListElement":[]},
 {"@context":"https://schema.org","@type":"Product","name":"エクスセンス サイレントアサシン 129F",
  "description":"<p>シーバスミノーの定番。<br>飛距離と泳ぎを両立。</p>",
  "image":["https://dassets.shimano.com/content/dam/sa129f_main.png"],
  "offers":{"@type":"Offer","price":"2640","priceCurrency":"JPY"}}]
</script></head><body>
<nav class="breadcrumb"><a>HOME</a><a>ルアー</a><a>シーバス</a></nav>
<h1>エクスセンス サイレントアサシン 129F</h1>
<table class="spec">
<tr><th>品番</th><th>全長(mm)</th><th>重量(g)</th><th>本体価格(円)</th></tr>
<tr><td>XM-129N</td><td>129</td><td>21</td><td>2,400</td></tr>
<tr><td>XM-129P</td><td>129</td><td>21</td><td>オープン</td></tr>
</table>
<div class="color-list"><ul>
<li><img src="/content/dam/c001.png" alt="キョウリンイワシ"><p>001 キョウリンイワシ</p></li>
<li><img src="/content/dam/c002.png" alt="Tボラ"></li>
</ul></div>
</body></html>`

func TestShimanoExtract(t *testing.T) {
	ext := fixtureExtractor(shimanoSource, newShimanoCrawler, shimanoPage)

	rec, err := ext.Extract(context.Background(), "https://fish.shimano.com/ja-JP/product/lure/seabass/minnow/a155f00000c5crzqav.html")
	require.NoError(t, err)

	assert.Equal(t, "エクスセンス サイレントアサシン 129F", rec.Name)
	assert.Equal(t, "a155f00000c5crzqav", rec.Slug)
	assert.Equal(t, "minnow", rec.Type)
	assert.Equal(t, []string{"seabass"}, rec.TargetFish)
	assert.Equal(t, 2640, rec.Price)
	assert.Equal(t, []float64{21}, rec.Weights)
	require.NotNil(t, rec.Length)
	assert.Equal(t, 129, *rec.Length)
	assert.Equal(t, "シーバスミノーの定番。\n飛距離と泳ぎを両立。", rec.Description)
	assert.Equal(t, "https://dassets.shimano.com/content/dam/sa129f_main.png", rec.MainImage)
	require.Len(t, rec.Colors, 2)
	assert.Equal(t, "Tボラ", rec.Colors[1].Name)
	assert.Equal(t, "https://fish.shimano.com/content/dam/c002.png", rec.Colors[1].ImageURL)
	assert.True(t, shimanoSource.NeedsScriptedBrowser)
}
