package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/capigrow/internal/core/domain"
)

// renderTable writes rows under headers as a borderless, column-aligned table.
// Nothing is written for an empty table except empty, when set.
func renderTable(w io.Writer, empty string, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		if empty == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, empty)
		return err
	}

	_, err := fmt.Fprintln(w, plainTable(rows).Headers(headers...).String())
	return err
}

// renderFields writes label/value pairs, one per line, with the values aligned.
func renderFields(w io.Writer, pairs ...string) error {
	rows := make([][]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, []string{pairs[i] + ":", pairs[i+1]})
	}
	if len(rows) == 0 {
		return nil
	}
	// The first pair is the header row: a table without headers drops its last row.
	_, err := fmt.Fprintln(w, plainTable(rows[1:]).Headers(rows[0]...).String())
	return err
}

// plainTable is a borderless table whose header row and first column are bold.
func plainTable(rows [][]string) *table.Table {
	return table.New().
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow || col == 0 {
				return style.Bold(true)
			}
			return style
		})
}

func money(amount float64, code string) string {
	return domain.FormatMoney(amount, code)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func transactionRows(list []domain.Transaction) [][]string {
	rows := make([][]string, 0, len(list))
	for _, tx := range list {
		rows = append(rows, []string{tx.ID, tx.Type, money(tx.Amount, tx.Currency), tx.Status, tx.Reference, tx.CreatedAt})
	}
	return rows
}

var transactionHeaders = []string{"ID", "TYPE", "AMOUNT", "STATUS", "REFERENCE", "DATE"}

func printTransaction(w io.Writer, tx domain.Transaction) error {
	return renderFields(w,
		"ID", tx.ID,
		"Type", tx.Type,
		"Amount", money(tx.Amount, tx.Currency),
		"Status", tx.Status,
		"Reference", tx.Reference,
		"Description", tx.Description,
		"Date", tx.CreatedAt,
	)
}
