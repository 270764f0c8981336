package spreadsheet

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

func TestRead_csv(t *testing.T) {
	in := "Program : B.Tech,Branch : ECE\n" +
		"S.No,H.T.No,Name\n" +
		"1,22EC0001,K Ramesh,extra\n"

	grid, err := Read(strings.NewReader(in), ".CSV")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("rows = %d, want 3", len(grid))
	}
	if got := grid[0][1]; got != "Branch : ECE" {
		t.Errorf("grid[0][1] = %v", got)
	}
	// ragged rows keep their own width
	if len(grid[2]) != 4 {
		t.Errorf("len(grid[2]) = %d, want 4", len(grid[2]))
	}
}

func TestRead_xlsx(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	if err := wb.SetSheetRow(sheet, "A1", &[]interface{}{"Program : B.Tech", "Branch : ECE"}); err != nil {
		t.Fatal(err)
	}
	if err := wb.SetSheetRow(sheet, "A2", &[]interface{}{"1", "22EC0001", "K Ramesh"}); err != nil {
		t.Fatal(err)
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	grid, err := Read(buf, ".xlsx")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("rows = %d, want 2", len(grid))
	}
	if got := grid[1][2]; got != "K Ramesh" {
		t.Errorf("grid[1][2] = %v", got)
	}
}

func TestRead_unsupported(t *testing.T) {
	_, err := Read(strings.NewReader("x"), ".pdf")
	if errors.Cause(err) != ErrUnsupportedFormat {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRead_legacyXLS(t *testing.T) {
	_, err := Read(strings.NewReader("x"), ".xls")
	if errors.Cause(err) != ErrUnsupportedFormat {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if !strings.Contains(err.Error(), ".xlsx") {
		t.Errorf("error %q does not tell the caller how to proceed", err)
	}
}
