package htmlview

import (
	"bytes"
	"testing"

	"RiskView/internal/domain/models"
	"RiskView/internal/services/colorscale"
	"RiskView/internal/services/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func renderPage(t *testing.T, p Page) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, p))
	return buf.String()
}

func TestRenderHeatmapPage(t *testing.T) {
	target := models.ViewTarget{Index: "N50", Mode: models.ModeTrailing, Timeline: 3.5}
	payload := &models.HeatmapPayload{
		IndexName: "N50",
		CAGR:      ptr(0.1234),
		Mode:      models.ModeTrailing,
		Timeline:  3.5,
		HeatmapData: map[string]map[string]*float64{
			"2023": {"1": ptr(12.5), "2": nil},
			"2022": {"1": ptr(-4)},
		},
	}
	h := render.New(colorscale.PolicyDynamic, colorscale.HigherIsBetter).Heatmap(payload, target)
	h = render.FilterYear(h, "2022")

	out := renderPage(t, Page{BasePath: "/risk-reward", Target: target, Tree: render.HeatmapTree("v1", h)})

	assert.Contains(t, out, "Trailing 3.5-Year Returns Heatmap")
	assert.Contains(t, out, "12.34%")
	assert.Contains(t, out, "+12.5%")
	assert.Contains(t, out, "background: #1e8000; color: white;")
	assert.Contains(t, out, `action="/risk-reward/heatmap/year"`)
	assert.Contains(t, out, `<option value="2022" selected>`)
	assert.Contains(t, out, `<option value="3.5" selected>`)
	assert.Contains(t, out, `<input type="hidden" name="index" value="N50">`)
	assert.Contains(t, out, "Colors automatically scale from lowest (-4.0%) to highest (12.5%) in the data")
	assert.Contains(t, out, `class="year hidden">2023`)
	assert.Contains(t, out, `<div class="cell empty" style=`)
	assert.Contains(t, out, `<div class="cell empty hidden" style=`)
	assert.Contains(t, out, ".cell:hover { transform: scale(1.1)")
}

func TestRenderCategoryPage(t *testing.T) {
	rows := []models.MetricRow{
		{IndexName: "NIFTY BANK", Ret: ptr(22), V1: ptr(3), Risk: 85, AbsMom: ptr(1), Momentum: nil},
	}
	state := models.SortState{Column: models.ColumnRet, Ascending: false}
	c := render.New(colorscale.PolicyDynamic, colorscale.HigherIsBetter).Category("Sector", rows, state)
	target := models.ViewTarget{Category: "Sector", Mode: models.ModeRolling, Timeline: 3}

	out := renderPage(t, Page{Target: target, Categories: []string{"Broad", "Sector"}, Tree: render.CategoryTree("v1", c)})

	assert.Contains(t, out, `href="/heatmap/sort?column=ret"`)
	assert.Contains(t, out, `href="/heatmap?category=Broad&amp;mode=rolling&amp;timeline=3">Broad</a>`)
	assert.Contains(t, out, `class="active">Sector</a>`)
	assert.Contains(t, out, "Ret &#9660;")
	assert.Contains(t, out, `<td class="metric-cell green-dark">22</td>`)
	assert.Contains(t, out, `<td class="metric-cell green-dark">85%</td>`)
	assert.Contains(t, out, `<td class="metric-cell ">-</td>`)
	assert.Contains(t, out, `<option value="rolling" selected>Rolling</option>`)
}

func TestRenderErrorAndIdle(t *testing.T) {
	out := renderPage(t, Page{Tree: render.Error("v1", "No data found for this category")})
	assert.Contains(t, out, `<div class="message error">No data found for this category</div>`)

	out = renderPage(t, Page{})
	assert.Contains(t, out, "Select an index or a category")
}

func TestRenderEscapesNames(t *testing.T) {
	out := renderPage(t, Page{Tree: render.Error("v1", "<script>x</script>")})
	assert.NotContains(t, out, "<script>x</script>")
}
