package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ekta-foundation/casebook/core/scorecard"
)

const (
	summarySheet    = "Summary"
	scoreCardsSheet = "Scorecards"
)

var scoreCardColumns = []interface{}{"Year", "Month", "Week", "Skill Area", "Sub Task", "Score", "Description"}

// ExportRangeReport writes rr as an XLSX workbook to w.
func ExportRangeReport(w io.Writer, rr scorecard.RangeReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return errors.Wrap(err, "naming summary sheet")
	}
	if _, err := f.NewSheet(scoreCardsSheet); err != nil {
		return errors.Wrap(err, "creating scorecards sheet")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	if err = writeSummary(f, rr, bold); err != nil {
		return err
	}
	if err = writeScoreCards(f, rr, bold); err != nil {
		return err
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func writeSummary(f *excelize.File, rr scorecard.RangeReport, bold int) error {
	programs := make([]string, 0, len(rr.Programs))
	for _, p := range rr.Programs {
		programs = append(programs, p.Name)
	}
	educator := ""
	if rr.Employee != nil {
		educator = rr.Employee.Name
	}
	dr := rr.DateRange

	rows := [][]interface{}{
		{"Student", rr.Student.Name},
		{"Age", rr.Student.Age},
		{"Educator", educator},
		{"Programs", strings.Join(programs, ", ")},
		{"From", dr.StartMonth.String() + " " + strconv.Itoa(dr.StartYear)},
		{"To", dr.EndMonth.String() + " " + strconv.Itoa(dr.EndYear)},
		{"Score Cards", len(rr.ScoreCards)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return errors.Wrap(err, "writing summary")
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A"+strconv.Itoa(len(rows)), bold); err != nil {
		return errors.Wrap(err, "styling summary")
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

func writeScoreCards(f *excelize.File, rr scorecard.RangeReport, bold int) error {
	skillAreas := make(map[string]string, len(rr.SkillAreas))
	for _, sa := range rr.SkillAreas {
		skillAreas[sa.ID] = sa.Name
	}
	subTasks := make(map[string]string, len(rr.SubTasks))
	for _, st := range rr.SubTasks {
		subTasks[st.ID] = st.Name
	}

	if err := f.SetSheetRow(scoreCardsSheet, "A1", &scoreCardColumns); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := f.SetRowStyle(scoreCardsSheet, 1, 1, bold); err != nil {
		return errors.Wrap(err, "styling header")
	}

	for i, sc := range rr.ScoreCards {
		var score interface{}
		if sc.Score != nil {
			score = *sc.Score
		}
		row := []interface{}{
			sc.Year,
			sc.Month.String(),
			sc.Week,
			skillAreas[sc.SkillAreaID],
			subTasks[sc.SubTaskID],
			score,
			sc.Description,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(scoreCardsSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing score card %s", sc.ID)
		}
	}
	return f.SetColWidth(scoreCardsSheet, "D", "E", 28)
}
