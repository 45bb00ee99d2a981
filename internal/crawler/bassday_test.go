package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealmungchi/lurecrawler/internal/lure"
)

const bassdayPage = `<html><body>
<h1 class="product-name">シュガーミノー SG 70F</h1>
<div class="product-image"><img src="/products/img/sg70f.jpg"></div>
<div class="product-lead">港湾部のナイトゲームで活躍するフローティングミノー。</div>
<div class="spec">SIZE：70mm　WEIGHT：6g　TYPE：フローティング<br>PRICE：￥1,500＋税</div>
<div class="gallery">
<figure><img src="/products/img/sg70f_p03.jpg"><figcaption>P-03 パールチャートバック</figcaption></figure>
<figure><img src="/products/img/sg70f_h12.jpg"><figcaption>H-12 ホロイワシ</figcaption></figure>
</div>
</body></html>`

func TestBassdayExtract(t *testing.T) {
	ext := fixtureExtractor(bassdaySource, newBassdayCrawler, bassdayPage)

	rec, err := ext.Extract(context.Background(), "https://www.bassday.co.jp/salt/sugar-minnow-sg70f.html")
	require.NoError(t, err)

	assert.Equal(t, "sugar-minnow-sg70f", rec.Slug)
	assert.Equal(t, "minnow", rec.Type)
	assert.Equal(t, []string{"seabass"}, rec.TargetFish)
	assert.Equal(t, 1650, rec.Price)
	assert.Equal(t, []float64{6}, rec.Weights)
	require.NotNil(t, rec.Length)
	assert.Equal(t, 70, *rec.Length)
	assert.Equal(t, []lure.Color{
		{Name: "パールチャートバック", ImageURL: "https://www.bassday.co.jp/products/img/sg70f_p03.jpg"},
		{Name: "ホロイワシ", ImageURL: "https://www.bassday.co.jp/products/img/sg70f_h12.jpg"},
	}, rec.Colors)
}

func TestBassdayFields(t *testing.T) {
	fields := bassdayFields("SIZE:70mm WEIGHT:6g TYPE:フローティングPRICE:¥1,500+税")
	assert.Equal(t, [][2]string{
		{"SIZE", "70mm"},
		{"WEIGHT", "6g"},
		{"TYPE", "フローティング"},
		{"PRICE", "¥1,500+税"},
	}, fields)
}

func TestBassdayExtractFirstLengthWins(t *testing.T) {
	page := `<html><body><h1 class="product-name">Sugar Minnow 70F</h1>
<div class="spec">SIZE:70mm LENGTH:85mm WEIGHT:6g</div>
<div class="gallery"><figure><img src="/img/1.jpg"><figcaption>01 アユ</figcaption></figure></div>
</body></html>`

	for i := 0; i < 20; i++ {
		ext := fixtureExtractor(bassdaySource, newBassdayCrawler, page)
		rec, err := ext.Extract(context.Background(), "https://www.bassday.co.jp/salt/sugar-minnow-70f.html")
		require.NoError(t, err)
		require.NotNil(t, rec.Length)
		assert.Equal(t, 70, *rec.Length)
	}
}
