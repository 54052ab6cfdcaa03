package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

func price(v float64) *float64 { return &v }

func TestPrintBoard(t *testing.T) {
	board := &contracts.ProcurementBoard{
		Product:       "VLSFO",
		ReferenceDate: "2025-01-08",
		Columns:       []string{"2025-01-09", "2025-01-10"},
		Summary: []contracts.SummaryRow{
			{ETA: "2025-01-22", DON: "2025-01-09", Status: contracts.StatusNominate},
			{ETA: "2025-01-23", DON: "2025-01-10", Status: contracts.StatusWaiting},
		},
		Detail: []contracts.DetailRow{
			{
				ETA: "2025-01-22", DON: "2025-01-09",
				Prices:  []*float64{price(600), price(610.5)},
				Classes: []contracts.CellClass{contracts.CellNominate, contracts.CellWaiting},
			},
			{
				ETA: "2025-01-23", DON: "2025-01-10",
				Prices:  []*float64{nil, price(610.5)},
				Classes: []contracts.CellClass{contracts.CellNaN, contracts.CellNominate},
			},
		},
	}

	var buf bytes.Buffer
	PrintBoard(&buf, board)
	out := buf.String()

	assert.Contains(t, out, "VLSFO  (reference 2025-01-08, 1 nominated / 2 windows)")
	assert.Contains(t, out, "01-09")
	assert.Contains(t, out, "600.00*")
	assert.Contains(t, out, "610.50")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	require.True(t, strings.HasPrefix(last, "2025-01-23"))
	assert.Contains(t, last, " -  ")
	assert.True(t, strings.HasSuffix(last, "610.50*"))
}

func TestPrintBoard_NoColumns(t *testing.T) {
	var buf bytes.Buffer
	PrintBoard(&buf, &contracts.ProcurementBoard{
		Product:       "MGO",
		ReferenceDate: "2025-01-08",
		Summary:       []contracts.SummaryRow{{ETA: "2025-01-22", DON: "2025-01-09", Status: contracts.StatusWaiting}},
	})

	assert.Contains(t, buf.String(), "Waiting")
	assert.Contains(t, buf.String(), "(no forecast prices)")
}

func TestPrintTableRow(t *testing.T) {
	var buf bytes.Buffer
	PrintTableHeader(&buf, []string{"A", "B"}, []int{3, 2})
	PrintTableRow(&buf, []string{"x", "y"}, []int{3, 2})

	assert.Equal(t, "A    B\n───────\nx    y\n", buf.String())
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "-", formatCell(nil, contracts.CellNaN))
	assert.Equal(t, "1.50", formatCell(price(1.5), contracts.CellWaiting))
	assert.Equal(t, "1.50*", formatCell(price(1.5), contracts.CellNominate))
	assert.Equal(t, "01-09", shortDate("2025-01-09"))
	assert.Equal(t, "bad", shortDate("bad"))
}
