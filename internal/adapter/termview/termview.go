// Package termview draws render trees for a terminal.
package termview

import (
	"fmt"
	"io"
	"strings"

	"RiskView/internal/domain/models"
	"RiskView/internal/services/colorscale"
	"RiskView/internal/services/render"

	"github.com/charmbracelet/lipgloss"
)

const (
	yearWidth   = 6
	cellWidth   = 8
	metricWidth = 10
)

var classColors = map[colorscale.Class][2]string{
	colorscale.ClassGreenDark:  {"#1e8000", "#ffffff"},
	colorscale.ClassLightGreen: {"#33db00", "#ffffff"},
	colorscale.ClassYellow:     {"#f5ce42", "#333333"},
	colorscale.ClassOrange:     {"#d97b00", "#ffffff"},
	colorscale.ClassRed:        {"#ff0000", "#ffffff"},
}

// Renderer styles output for the color profile of its writer.
type Renderer struct {
	lg *lipgloss.Renderer

	title  lipgloss.Style
	muted  lipgloss.Style
	errMsg lipgloss.Style
	header lipgloss.Style
}

// New detects the color profile of w; a non-terminal writer gets plain text.
func New(w io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		lg:     lg,
		title:  lg.NewStyle().Bold(true).Foreground(lipgloss.Color("#007E6E")),
		muted:  lg.NewStyle().Foreground(lipgloss.Color("#666666")),
		errMsg: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("#c0392b")),
		header: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("#666666")),
	}
}

// Write renders tree to w followed by a newline.
func (r *Renderer) Write(w io.Writer, tree *render.RenderTree) error {
	_, err := fmt.Fprintln(w, r.Render(tree))
	return err
}

// Render returns the text of tree.
func (r *Renderer) Render(tree *render.RenderTree) string {
	switch {
	case tree == nil || tree.State == models.StateIdle:
		return r.muted.Render("Select an index or a category")
	case tree.State == models.StateError:
		return r.errMsg.Render(tree.Message)
	case tree.State == models.StateLoading:
		return r.muted.Render(tree.Message)
	case tree.Heatmap != nil:
		return r.heatmap(tree.Heatmap)
	case tree.Category != nil:
		return r.category(tree.Category)
	default:
		return ""
	}
}

func (r *Renderer) heatmap(h *render.HeatmapView) string {
	blocks := []string{r.title.Render(h.IndexName), ""}

	tiles := make([]string, 0, len(h.Tiles))
	for _, t := range h.Tiles {
		tiles = append(tiles, r.muted.Render(t.Label+": ")+t.Value)
	}
	blocks = append(blocks, strings.Join(tiles, "   "), "", r.title.Render(h.Title))
	blocks = append(blocks,
		r.muted.Render(h.Formula.Name),
		"  "+h.Formula.Expression,
		"  "+r.muted.Render(h.Formula.Explanation),
	)
	if h.Range != nil {
		blocks = append(blocks, r.muted.Render(h.Range.Text))
	}

	legend := make([]string, 0, len(h.Legend))
	for _, e := range h.Legend {
		legend = append(legend, r.swatch(e.Background, e.Foreground).Padding(0, 1).Render(e.Label))
	}
	blocks = append(blocks, strings.Join(legend, " "), "")

	head := make([]string, 0, len(h.Header))
	for i, label := range h.Header {
		width := cellWidth
		if i == 0 {
			width = yearWidth
		}
		head = append(head, r.header.Width(width).Align(lipgloss.Center).Render(label))
	}
	blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, head...))

	for _, row := range h.VisibleRows() {
		line := []string{r.header.Width(yearWidth).Align(lipgloss.Center).Render(row.Year)}
		for _, c := range row.Cells {
			line = append(line, r.swatch(c.Background, c.Foreground).Width(cellWidth).Align(lipgloss.Center).Render(c.Text))
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *Renderer) category(c *render.CategoryView) string {
	nameWidth := len("Index")
	for _, row := range c.Rows {
		if w := lipgloss.Width(row.Name); w > nameWidth {
			nameWidth = w
		}
	}
	nameWidth += 2

	head := make([]string, 0, len(c.Columns))
	for i, col := range c.Columns {
		label := col.Label
		if col.Active {
			if col.Ascending {
				label += " ▲"
			} else {
				label += " ▼"
			}
		}
		if i == 0 {
			head = append(head, r.header.Width(nameWidth).Render(label))
			continue
		}
		head = append(head, r.header.Width(metricWidth).Align(lipgloss.Right).Render(label))
	}

	blocks := []string{r.title.Render(c.Category), "", lipgloss.JoinHorizontal(lipgloss.Top, head...)}
	for _, row := range c.Rows {
		line := []string{r.lg.NewStyle().Width(nameWidth).Render(row.Name)}
		for _, cell := range row.Cells {
			st := r.lg.NewStyle()
			if colors, ok := classColors[cell.Class]; ok {
				st = r.swatch(colors[0], colors[1])
			}
			line = append(line, st.Width(metricWidth).Align(lipgloss.Right).Render(cell.Text))
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *Renderer) swatch(background, foreground string) lipgloss.Style {
	return r.lg.NewStyle().
		Background(lipgloss.Color(cssHex(background))).
		Foreground(lipgloss.Color(cssHex(foreground)))
}

// cssHex expands the CSS shorthand colors used by the HTML palette.
func cssHex(c string) string {
	switch {
	case c == "white":
		return "#ffffff"
	case len(c) == 4 && c[0] == '#':
		return "#" + strings.Repeat(c[1:2], 2) + strings.Repeat(c[2:3], 2) + strings.Repeat(c[3:4], 2)
	default:
		return c
	}
}
