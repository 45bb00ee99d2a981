package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

// servePage serves page over real HTTP and returns the extractor for src wired
// to the plain client, plus the server URL
func servePage(t *testing.T, src Source, build func(BaseCrawler) Extractor, page string) (Extractor, string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)

	base := newBaseCrawler(src, Options{HTTP: helpers.NewClient(5 * time.Second), MaxAttempts: 1}, nil)
	return build(base), server.URL
}

func TestEndToEndWeightsPriceAndColorDedup(t *testing.T) {
	page := `<html><body>
<h1 class="product-name">Narage 65</h1>
<div class="product-spec">Weight: 20g / 30g / 40g</div>
<p class="product-price">¥2,200(税込)</p>
<ul class="product-color">
<li data-color-name="Red"><img src="/c/red.jpg"></li>
<li data-color-name="Red "><img src="/c/red2.jpg"></li>
<li data-color-name="Blue"><img src="/c/blue.jpg"></li>
</ul></body></html>`
	ext, base := servePage(t, blueBlueSource, newBlueBlueCrawler, page)

	rec, err := ext.Extract(context.Background(), base+"/item/narage-65/")
	require.NoError(t, err)

	assert.Equal(t, []float64{20, 30, 40}, rec.Weights)
	assert.Equal(t, 2200, rec.Price)
	assert.Equal(t, []lure.Color{
		{Name: "Red", ImageURL: base + "/c/red.jpg"},
		{Name: "Blue", ImageURL: base + "/c/blue.jpg"},
	}, rec.Colors)
}

func TestEndToEndTaxExcludedPrice(t *testing.T) {
	page := `<html><body>
<h2 class="prod_name">Pointer 100SP</h2>
<p class="price">1,970円 (税別)</p>
</body></html>`
	ext, base := servePage(t, luckyCraftSource, newLuckyCraftCrawler, page)

	rec, err := ext.Extract(context.Background(), base+"/product/pointer100sp.html")
	require.NoError(t, err)
	assert.Equal(t, 2167, rec.Price)
}

func TestEndToEndOunceWeight(t *testing.T) {
	page := `<html><body>
<h1 class="product-name">Shallow Runner</h1>
<div class="product-spec">Weight: 3/8oz.</div>
</body></html>`
	ext, base := servePage(t, blueBlueSource, newBlueBlueCrawler, page)

	rec, err := ext.Extract(context.Background(), base+"/item/shallow-runner/")
	require.NoError(t, err)
	assert.Equal(t, []float64{10.6}, rec.Weights)
}

func TestEndToEndMissingPriceIsNotFatal(t *testing.T) {
	page := `<html><body>
<h1 class="product-name">Shore Jig</h1>
<div class="product-spec">Weight: 40g<br>Price: OPEN</div>
</body></html>`
	ext, base := servePage(t, blueBlueSource, newBlueBlueCrawler, page)

	rec, err := ext.Extract(context.Background(), base+"/item/shore-jig/")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Price)
	assert.Equal(t, "shore-jig", rec.Slug)
}

func TestEndToEndMissingNameIsFatal(t *testing.T) {
	page := `<html><body><div class="product-spec">Weight: 40g</div></body></html>`
	ext, base := servePage(t, blueBlueSource, newBlueBlueCrawler, page)

	url := base + "/item/unknown/"
	rec, err := ext.Extract(context.Background(), url)
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, scrapeerrors.ErrorTypeValidation, scrapeerrors.TypeOf(err))
	assert.Contains(t, err.Error(), url)
}
