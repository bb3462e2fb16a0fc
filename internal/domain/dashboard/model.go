package dashboard

// Stats is the dashboard headline block: cohort sizes plus the open ledger
// count. When the underlying stores are unreachable or empty the service
// substitutes representative sample figures so the dashboard always renders.
type Stats struct {
	IITCount            int `json:"iit_count"`
	MissedCount         int `json:"missed_count"`
	UpcomingCount       int `json:"upcoming_count"`
	PendingActionsCount int `json:"pending_actions_count"`
}

// Summary is the detailed reporting view. Unlike Stats it fails loudly:
// reporting consumers need to know when the numbers could not be computed.
type Summary struct {
	UpcomingCount       int `json:"upcoming_count"`
	MissedCount         int `json:"missed_count"`
	IITCount            int `json:"iit_count"`
	PendingActionsCount int `json:"pending_actions_count"`
	TotalActivePatients int `json:"total_active_patients"`
}
