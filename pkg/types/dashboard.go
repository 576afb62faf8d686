package types

// DashboardCounts is the number of equipment items per alert status.
type DashboardCounts struct {
	Current int `json:"current"`
	DueSoon int `json:"dueSoon"`
	Overdue int `json:"overdue"`
}

// DashboardDueItem is a short line of the due soon / overdue lists.
type DashboardDueItem struct {
	EquipmentID      uint64 `json:"equipmentId"`
	CustomIdentifier string `json:"customIdentifier"`
	EquipmentType    string `json:"equipmentType"`
	NextDueDate      string `json:"nextDueDate"`
	DaysLeft         int    `json:"daysLeft"`
}

type DashboardActivityItem struct {
	InspectionID     uint64 `json:"inspectionId"`
	EquipmentID      uint64 `json:"equipmentId"`
	CustomIdentifier string `json:"customIdentifier"`
	InspectionDate   string `json:"inspectionDate"`
	InspectorName    string `json:"inspectorName"`
	ResultStatus     string `json:"resultStatus"`
}

type DashboardCountByGroup struct {
	GroupName string `json:"groupName"`
	Count     int64  `json:"count"`
}
