package request

// WindowQuery selects the trailing window of a date bucketed report
type WindowQuery struct {
	Days int `form:"days" binding:"omitempty,gte=0,lte=3650"`
}

// DeadstockQuery narrows the deadstock report
type DeadstockQuery struct {
	Category       string  `form:"category"`
	Warehouse      string  `form:"warehouse"`
	MinValue       float64 `form:"minValue" binding:"omitempty,gte=0"`
	IncludeReports bool    `form:"includeReports"`
}
