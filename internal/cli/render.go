package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/okieraised/go-rpn-anchors/utils"
	"gorgonia.org/tensor"
)

const (
	formatPlain = "plain"
	formatTable = "table"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// renderTable writes one line per box in plain format, or a bordered table.
func renderTable(w io.Writer, format, title string, anchors *tensor.Dense) error {
	rows, err := utils.Rows(anchors)
	if err != nil {
		return err
	}

	switch format {
	case formatPlain:
		if title != "" {
			if _, err := fmt.Fprintf(w, "# %s\n", title); err != nil {
				return err
			}
		}
		for _, row := range rows {
			if _, err := fmt.Fprintln(w, formatRow(row)); err != nil {
				return err
			}
		}
		return nil
	case formatTable:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "x1", "y1", "x2", "y2")
		for i, row := range rows {
			t.Row(append([]string{strconv.Itoa(i)}, formatCells(row)...)...)
		}
		if title != "" {
			if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatPlain, formatTable)
	}
}

func formatCells(row []float32) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return cells
}

func formatRow(row []float32) string {
	return "[" + strings.Join(formatCells(row), ", ") + "]"
}
