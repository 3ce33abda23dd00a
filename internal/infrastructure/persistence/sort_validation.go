package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// withCommon merges extra fields into a copy of CommonSortFields
func withCommon(fields ...string) map[string]bool {
	m := make(map[string]bool, len(CommonSortFields)+len(fields))
	for k := range CommonSortFields {
		m[k] = true
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

var (
	UserSortFields       = withCommon("email", "display_name", "role", "status", "last_login_at")
	CompanySortFields    = withCommon("code", "name", "status")
	ReferrerSortFields   = withCommon("name", "referral_code", "commission_rate", "status")
	SeasonRuleSortFields = withCommon("name", "priority", "recurrence", "adjustment_value", "is_active")
	HolidaySortFields    = withCommon("name", "date")
	QuoteSortFields      = withCommon("quote_number", "customer_name", "move_date", "status", "total_price")
	TruckSortFields      = withCommon("code", "name", "capacity_cu_ft", "status")
	EmployeeSortFields   = withCommon("code", "name", "role", "hourly_rate", "status")
)
