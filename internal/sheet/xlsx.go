package sheet

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ErrSheetExists reports that the target worksheet already holds an
// earlier run. Overwriting would silently destroy it, so the caller must
// pick another name or remove the sheet first.
var ErrSheetExists = errors.New("worksheet already exists")

// Column and row sizes mirror the catalog layout the storefront team is
// used to: image and description columns around 300px wide, data rows
// tall enough to render the product image.
const (
	imgColumnWidth  = 43
	descColumnWidth = 43
	minColumnWidth  = 8
	maxColumnWidth  = 60
	dataRowHeight   = 225
)

// Workbook writes run tables into one xlsx file, a worksheet per run name.
// An existing file is extended, so several runs can share a workbook.
type Workbook struct {
	path string
}

func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

func (w *Workbook) Path() string {
	return w.path
}

func (w *Workbook) WriteTable(table Table) error {
	if table.Name == "" {
		return errors.New("table name must not be empty")
	}

	f, created, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(table.Name); err != nil {
		return fmt.Errorf("lookup sheet %q failed: %w", table.Name, err)
	} else if idx != -1 {
		return fmt.Errorf("sheet %q: %w", table.Name, ErrSheetExists)
	}

	idx, err := f.NewSheet(table.Name)
	if err != nil {
		return fmt.Errorf("create sheet %q failed: %w", table.Name, err)
	}

	if err := w.writeRows(f, table); err != nil {
		return err
	}
	if err := w.applyLayout(f, table); err != nil {
		return err
	}

	// A fresh workbook starts with a default sheet nobody asked for.
	if created && table.Name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet failed: %w", err)
		}
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook failed: %w", err)
	}
	return nil
}

func (w *Workbook) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(w.path); err == nil {
		f, err := excelize.OpenFile(w.path)
		if err != nil {
			return nil, false, fmt.Errorf("open workbook failed: %w", err)
		}
		return f, false, nil
	}
	return excelize.NewFile(), true, nil
}

func (w *Workbook) writeRows(f *excelize.File, table Table) error {
	header := make([]interface{}, 0, 3+len(table.Vocabulary))
	for _, h := range table.Header() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	for i, row := range table.Rows {
		rowIdx := i + 2

		titleCell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(table.Name, titleCell, row.Title); err != nil {
			return fmt.Errorf("write title failed: %w", err)
		}
		if row.URL != "" {
			if err := f.SetCellHyperLink(table.Name, titleCell, row.URL, "External"); err != nil {
				return fmt.Errorf("write title link failed: %w", err)
			}
		}

		imgCell, err := excelize.CoordinatesToCellName(2, rowIdx)
		if err != nil {
			return err
		}
		if row.ImageURL != "" {
			formula := fmt.Sprintf("IMAGE(%q)", row.ImageURL)
			if err := f.SetCellFormula(table.Name, imgCell, formula); err != nil {
				return fmt.Errorf("write image formula failed: %w", err)
			}
		}

		descCell, err := excelize.CoordinatesToCellName(3, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(table.Name, descCell, row.Description); err != nil {
			return fmt.Errorf("write description failed: %w", err)
		}

		for j, present := range row.Presence {
			cell, err := excelize.CoordinatesToCellName(4+j, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(table.Name, cell, present); err != nil {
				return fmt.Errorf("write presence failed: %w", err)
			}
		}

		if err := f.SetRowHeight(table.Name, rowIdx, dataRowHeight); err != nil {
			return fmt.Errorf("set row height failed: %w", err)
		}
	}
	return nil
}

func (w *Workbook) applyLayout(f *excelize.File, table Table) error {
	titles := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		titles = append(titles, row.Title)
	}
	if err := f.SetColWidth(table.Name, "A", "A", autoWidth("title", titles)); err != nil {
		return fmt.Errorf("set column width failed: %w", err)
	}
	if err := f.SetColWidth(table.Name, "B", "B", imgColumnWidth); err != nil {
		return fmt.Errorf("set column width failed: %w", err)
	}
	if err := f.SetColWidth(table.Name, "C", "C", descColumnWidth); err != nil {
		return fmt.Errorf("set column width failed: %w", err)
	}
	for j, term := range table.Vocabulary {
		col, err := excelize.ColumnNumberToName(4 + j)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(table.Name, col, col, autoWidth(term, nil)); err != nil {
			return fmt.Errorf("set column width failed: %w", err)
		}
	}

	if len(table.Rows) == 0 {
		return nil
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("create wrap style failed: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(3, len(table.Rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(table.Name, "C2", last, wrap); err != nil {
		return fmt.Errorf("apply wrap style failed: %w", err)
	}
	return nil
}

// autoWidth sizes a column after its widest content, clamped so a huge
// description never produces an unusable sheet.
func autoWidth(header string, values []string) float64 {
	width := utf8.RuneCountInString(header)
	for _, v := range values {
		if n := utf8.RuneCountInString(v); n > width {
			width = n
		}
	}
	w := float64(width) + 2
	if w < minColumnWidth {
		return minColumnWidth
	}
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}
