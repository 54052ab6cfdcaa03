package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

var stdout io.Writer = os.Stdout

// PrintProgress prints a progress step with counter
// Example: [Sync] VLSFO: 42 forecasts stored [1/3]
func PrintProgress(tag string, message string, current int, total int) {
	fmt.Fprintf(stdout, "[%s] %s [%d/%d]\n", tag, message, current, total)
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Fprintln(stdout, "───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Fprintln(stdout, "═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "⚠️  %s\n", message)
	fmt.Fprintln(stdout)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Fprintf(stdout, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(stdout, "❌ %s\n", message)
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Fprintf(stdout, "   • %s\n", item)
	}
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Fprintf(stdout, "   %-*s : %s\n", keyWidth, key, value)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		if i < len(values)-1 {
			fmt.Fprintf(w, "%-*s  ", widths[i], val)
		} else {
			fmt.Fprint(w, val)
		}
	}
	fmt.Fprintln(w)
}

// ═══════════════════════════════════════════════════════════
// Procurement board
// ═══════════════════════════════════════════════════════════

const (
	dateWidth   = 10
	statusWidth = 8
	priceWidth  = 9
)

// PrintBoard prints the summary table followed by the price grid.
// Nominate cells are marked with '*', cells outside the window with '-'.
func PrintBoard(w io.Writer, board *contracts.ProcurementBoard) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  %s  (reference %s, %d nominated / %d windows)\n",
		board.Product, board.ReferenceDate, board.NominatedCount(), len(board.Summary))
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")

	widths := []int{dateWidth, dateWidth, statusWidth}
	PrintTableHeader(w, []string{"ETA", "DON", "STATUS"}, widths)
	for _, r := range board.Summary {
		PrintTableRow(w, []string{r.ETA, r.DON, string(r.Status)}, widths)
	}

	if len(board.Columns) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "(no forecast prices)")
		return
	}

	fmt.Fprintln(w)
	header := []string{"ETA", "DON"}
	gridWidths := []int{dateWidth, dateWidth}
	for _, c := range board.Columns {
		header = append(header, shortDate(c))
		gridWidths = append(gridWidths, priceWidth)
	}
	PrintTableHeader(w, header, gridWidths)

	for _, r := range board.Detail {
		values := []string{r.ETA, r.DON}
		for j, p := range r.Prices {
			values = append(values, formatCell(p, r.Classes[j]))
		}
		PrintTableRow(w, values, gridWidths)
	}
}

func formatCell(price *float64, class contracts.CellClass) string {
	if price == nil || class == contracts.CellNaN {
		return "-"
	}
	s := fmt.Sprintf("%.2f", *price)
	if class == contracts.CellNominate {
		s += "*"
	}
	return s
}

// shortDate YYYY-MM-DD -> MM-DD
func shortDate(label string) string {
	if len(label) == len(contracts.DateLayout) {
		return label[5:]
	}
	return label
}
