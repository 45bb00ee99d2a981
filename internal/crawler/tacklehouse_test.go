package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealmungchi/lurecrawler/internal/lure"
)

const tackleHousePage = `<html><body>
<table class="item"><tr><td class="title"><font size="5">K-TEN BLUE OCEAN BKS140</font></td></tr>
<tr><td><img class="photo" src="images/bks140.jpg"></td></tr>
<tr><td class="comment">遠投性能に優れた<br>K-TENシステム搭載。</td></tr></table>
<table summary="spec">
<tr><th>Model</th><th>Length</th><th>Weight</th><th>Price</th></tr>
<tr><td>BKS140</td><td>140mm</td><td>32g</td><td>2,300</td></tr>
<tr><td>BKS115</td><td>115mm</td><td>24g</td><td>2,100</td></tr>
</table>
<p class="price_note">価格は本体価格(税抜)です</p>
<table summary="color"><tr>
<td><img src="images/c01.jpg"><br>No.1 SHホロイワシ</td>
<td><img src="images/c02.jpg"><br>No.2 SHコノシロ</td>
</tr></table>
</body></html>`

func TestTackleHouseExtract(t *testing.T) {
	ext := fixtureExtractor(tackleHouseSource, newTackleHouseCrawler, tackleHousePage)

	rec, err := ext.Extract(context.Background(), "http://www.tacklehouse.co.jp/product/bks140.html")
	require.NoError(t, err)

	assert.Equal(t, "K-TEN BLUE OCEAN BKS140", rec.Name)
	assert.Equal(t, "bks140", rec.Slug)
	assert.Equal(t, "minnow", rec.Type)
	assert.Equal(t, []string{"seabass"}, rec.TargetFish)
	assert.Equal(t, 2530, rec.Price)
	assert.Equal(t, []float64{24, 32}, rec.Weights)
	require.NotNil(t, rec.Length)
	assert.Equal(t, 140, *rec.Length)
	assert.Equal(t, "http://www.tacklehouse.co.jp/product/images/bks140.jpg", rec.MainImage)
	assert.Equal(t, []lure.Color{
		{Name: "SHホロイワシ", ImageURL: "http://www.tacklehouse.co.jp/product/images/c01.jpg"},
		{Name: "SHコノシロ", ImageURL: "http://www.tacklehouse.co.jp/product/images/c02.jpg"},
	}, rec.Colors)
}
