package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *ChromedpRenderer {
	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = renderer.Close() })
	return renderer
}

func TestChromedpRendererValidation(t *testing.T) {
	renderer := newTestRenderer(t)

	t.Run("nil request", func(t *testing.T) {
		_, err := renderer.Render(context.Background(), nil)

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("empty html", func(t *testing.T) {
		_, err := renderer.Render(context.Background(), &RenderRequest{
			HTML:      "   ",
			PaperSize: PaperSizeA4,
		})

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("invalid paper size", func(t *testing.T) {
		_, err := renderer.Render(context.Background(), &RenderRequest{
			HTML:      "<p>hello</p>",
			PaperSize: PaperSize("LETTERHEAD"),
		})

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidPaperSize, renderErr.Code)
	})
}

func TestBuildPrintParams(t *testing.T) {
	renderer := newTestRenderer(t)

	t.Run("a4 portrait with margins", func(t *testing.T) {
		params := renderer.buildPrintParams(&RenderRequest{
			HTML:        "<p>x</p>",
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     Margins{Top: 12, Right: 12, Bottom: 12, Left: 12},
		})

		assert.InDelta(t, 8.27, params.paperWidth, 0.01)
		assert.InDelta(t, 11.69, params.paperHeight, 0.01)
		assert.InDelta(t, 0.472, params.marginTop, 0.001)
		assert.False(t, params.landscape)
		assert.False(t, params.displayHeaderFooter)
	})

	t.Run("footer forces bottom margin", func(t *testing.T) {
		params := renderer.buildPrintParams(&RenderRequest{
			HTML:       "<p>x</p>",
			PaperSize:  PaperSizeA4,
			FooterHTML: "<span>page</span>",
		})

		assert.True(t, params.displayHeaderFooter)
		assert.GreaterOrEqual(t, params.marginBottom, mmToInches(10))
	})
}

func TestBuildCompleteHTML(t *testing.T) {
	renderer := newTestRenderer(t)

	t.Run("wraps fragment", func(t *testing.T) {
		html := renderer.buildCompleteHTML(&RenderRequest{HTML: "<p>body</p>", Title: "Order"})

		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "<title>Order</title>")
		assert.Contains(t, html, "<p>body</p>")
	})

	t.Run("keeps complete document as-is", func(t *testing.T) {
		doc := "<!DOCTYPE html><html><body>done</body></html>"
		assert.Equal(t, doc, renderer.buildCompleteHTML(&RenderRequest{HTML: doc}))
	})
}

func TestEstimatePageCount(t *testing.T) {
	pdf := []byte("%PDF-1.4 /Type /Pages /Type /Page /Type /Page trailer")
	assert.Equal(t, 2, estimatePageCount(pdf))

	assert.Equal(t, 1, estimatePageCount([]byte("%PDF-1.4")))
}
