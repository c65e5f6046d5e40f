package models

// Requests for performance HTTP endpoints. Defined in domain for consistency and reuse.

type BulkMetricsRequest struct {
	Accounts string `query:"accounts" json:"accounts" validate:"required,min=1"`
}

type LiveEquityRequest struct {
	Accounts string `query:"accounts" json:"accounts" validate:"required,min=1"`
}

type AccountsRequest struct {
	Monitored string `query:"monitored" json:"monitored" validate:"omitempty,oneof=true false"`
}
