package roster

import (
	"strconv"
	"strings"
)

// Grid is the raw 2-D cell matrix produced by a spreadsheet reader.
// Cells are scalar values (string, number or nil); no header semantics
// are attached. Rows may be ragged.
type Grid [][]interface{}

func (g Grid) NumRows() int { return len(g) }

// Cell returns the raw cell value at (row, col), or nil when out of range.
func (g Grid) Cell(row, col int) interface{} {
	if row < 0 || row >= len(g) {
		return nil
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// Text returns the trimmed string form of the cell at (row, col).
func (g Grid) Text(row, col int) string {
	return CellText(g.Cell(row, col))
}

// RowWidth returns the number of cells in the given row.
func (g Grid) RowWidth(row int) int {
	if row < 0 || row >= len(g) {
		return 0
	}
	return len(g[row])
}

// IsEmptyRow reports whether every cell of the row is empty.
func (g Grid) IsEmptyRow(row int) bool {
	for col := 0; col < g.RowWidth(row); col++ {
		if g.Text(row, col) != "" {
			return false
		}
	}
	return true
}

// CellText renders any scalar cell value as a trimmed string.
// Numbers keep their shortest decimal representation.
func CellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// CellInt parses a cell as an integer count. Floats are accepted when
// they carry no fractional part (spreadsheet numerics arrive as float64).
func CellInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val == float64(int(val)) {
			return int(val), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		// "18.0" style
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
			return int(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// CellFloat parses a cell as a float, stripping a trailing percent sign.
func CellFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(val), "%")
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
