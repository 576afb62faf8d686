package dto

import "ppe-tracker/pkg/types"

type DashboardDTO struct {
	AsOf              string                        `json:"asOf"`
	TotalEquipment    int                           `json:"totalEquipment"`
	Counts            types.DashboardCounts         `json:"counts"`
	CountByType       []types.DashboardCountByGroup `json:"countByType"`
	DueSoon           []types.DashboardDueItem      `json:"dueSoon"`
	Overdue           []types.DashboardDueItem      `json:"overdue"`
	RecentInspections []types.DashboardActivityItem `json:"recentInspections"`
}
