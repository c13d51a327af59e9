package ui

import (
	"strconv"

	"github.com/fr4nk3nst1ner/devsalary/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	headerEnglish = table.Row{"Programming language", "Vacancies found", "Vacancies processed", "Average salary"}
	headerRussian = table.Row{"Язык программирования", "Вакансий найдено", "Вакансий обработано", "Средняя зарплата"}
)

// TableOptions tweaks how a report is rendered
type TableOptions struct {
	// Russian switches the column headers to Russian
	Russian bool
	// Colorize paints the average salary by bracket
	Colorize bool
}

// NewTable returns a table writer with the ASCII look used for every report
func NewTable() table.Writer {
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault

	t := table.NewWriter()
	t.SetStyle(style)
	return t
}

// RenderTable formats a vendor report as a text table: language left
// aligned, counts centered, average salary right aligned.
func RenderTable(report models.VendorReport, title string, opts TableOptions) string {
	t := NewTable()
	t.SetTitle(title)

	if opts.Russian {
		t.AppendHeader(headerRussian)
	} else {
		t.AppendHeader(headerEnglish)
	}

	for _, stat := range report.Stats {
		var average any = stat.Average
		if opts.Colorize {
			average = ColorizeSalary(stat.Average, strconv.Itoa(stat.Average))
		}
		t.AppendRow(table.Row{stat.Keyword, stat.Found, stat.Processed, average})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	return t.Render()
}
