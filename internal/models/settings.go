package models

// Settings holds app-level configuration persisted in the store
type Settings struct {
	// Timezone is the IANA timezone name used for all calendar-day
	// comparisons; "Local" or empty means the system timezone
	Timezone string `json:"timezone"`

	// DailyContentQuota caps external content-generation calls per day
	DailyContentQuota int `json:"daily_content_quota"`
	// ContentCallsUsed counts calls made on ContentQuotaDate
	ContentCallsUsed int `json:"content_calls_used"`
	// ContentQuotaDate is the YYYY-MM-DD day the counter applies to;
	// the counter resets when it no longer matches today
	ContentQuotaDate string `json:"content_quota_date,omitempty"`

	// LastRolloverDate is the YYYY-MM-DD day the day-boundary pass last ran
	LastRolloverDate string `json:"last_rollover_date,omitempty"`
}
