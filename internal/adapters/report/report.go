// Package report は給与計算の結果を人が読む形式に整形します。
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"github.com/olekukonko/tablewriter"
)

// Format は出力形式です。
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
)

// Write は format に応じて lines を w に書き出します。
func Write(w io.Writer, format Format, lines []payroll.Line) error {
	switch format {
	case FormatText, "":
		return WriteText(w, lines)
	case FormatTable:
		return WriteTable(w, lines)
	default:
		return fmt.Errorf("report: unsupported format %q", format)
	}
}

// WriteText は1件ずつ見出しと支給額を並べた従来形式で書き出します。
func WriteText(w io.Writer, lines []payroll.Line) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Calculating Payroll")
	fmt.Fprintln(bw, "===================")
	for _, line := range lines {
		fmt.Fprintf(bw, "Payroll for: %s - %s\n", line.ID, line.Name)
		fmt.Fprintf(bw, "- Check amount: %d\n", line.Amount)
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// WriteTable は表形式で書き出します。
func WriteTable(w io.Writer, lines []payroll.Line) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Check amount"})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, line := range lines {
		table.Append([]string{line.ID, line.Name, strconv.FormatInt(int64(line.Amount), 10)})
	}
	table.Render()
	return nil
}

// WriteClerical は事務作業の報告を1行ずつ書き出します。
func WriteClerical(w io.Writer, reports []string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Tracking Employee Productivity")
	fmt.Fprintln(bw, "==============================")
	for _, r := range reports {
		fmt.Fprintln(bw, r)
	}
	return bw.Flush()
}
