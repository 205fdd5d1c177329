// Package export renders transactions into the plain-text report format:
//
//	Date: 2024-03-15T13:45:00
//	Description: Groceries
//	Category: Food
//	Amount: -42.5
//
// One block per transaction, each followed by a blank line. Missing values
// render as empty strings.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"budgettracker/internal/models"
)

// DateLayout is the timestamp layout of the Date line.
const DateLayout = "2006-01-02T15:04:05"

// Write renders txs to w in the report format.
func Write(w io.Writer, txs []models.Transaction) error {
	bw := bufio.NewWriter(w)
	for i := range txs {
		tx := &txs[i]

		date := ""
		if !tx.Date.IsZero() {
			date = tx.Date.Format(DateLayout)
		}
		category := ""
		if tx.Category != nil {
			category = tx.Category.Name
		}

		if _, err := fmt.Fprintf(bw, "Date: %s\nDescription: %s\nCategory: %s\nAmount: %s\n\n",
			date, tx.Description, category, tx.Money.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FileSink writes reports to a fixed path.
type FileSink struct {
	Path string
}

// Export truncates the sink file, writes txs to it and returns the file
// reopened for reading. The caller owns the returned handle.
func (s FileSink) Export(txs []models.Transaction) (*os.File, error) {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create export dir: %w", err)
		}
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, txs); err != nil {
		f.Close()
		return nil, fmt.Errorf("write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close export file: %w", err)
	}

	return os.Open(s.Path)
}
