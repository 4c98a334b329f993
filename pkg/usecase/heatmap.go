package usecase

import (
	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
)

// BuildHeatmap counts, per active staff member and per period, how many
// (assignment, in-window milestone date) pairs land in that period. Every
// active staff member gets a zero-filled row; inactive staff on a deal
// team are not counted. A staff member assigned twice to one project
// counts twice, matching the raw demand the assignments represent.
func BuildHeatmap(staff []*model.Staff, projects []*model.Project, periods []model.Period) []model.HeatmapRow {
	rows := make([]model.HeatmapRow, len(staff))
	rowIndex := make(map[types.StaffID]int, len(staff))

	for i, s := range staff {
		weeks := make([]model.PeriodCount, len(periods))
		for j, p := range periods {
			weeks[j] = model.PeriodCount{PeriodKey: p.Key}
		}
		rows[i] = model.HeatmapRow{
			StaffID:  s.ID,
			Name:     s.Name,
			Position: s.Position,
			Weeks:    weeks,
		}
		rowIndex[s.ID] = i
	}

	if len(periods) == 0 {
		return rows
	}

	for _, prj := range projects {
		var dates []types.Date
		for _, m := range prj.MilestonesIn(periods[0].Start, periods[len(periods)-1].End) {
			dates = append(dates, m.Date)
		}
		if len(dates) == 0 {
			continue
		}

		for _, a := range prj.Assignments {
			i, ok := rowIndex[a.StaffID]
			if !ok {
				continue
			}
			for _, d := range dates {
				if j, ok := PeriodIndex(periods, d); ok {
					rows[i].Weeks[j].Count++
				}
			}
		}
	}

	return rows
}
