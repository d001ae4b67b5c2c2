package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportId = uuid.UUID

// Report is a daily progress entry. Content is the author's raw markdown;
// Html is filled on reads with the rendered, sanitized version.
// AuthorFirstName/AuthorLastName are joined from the accounts table.
type Report struct {
	Id              ReportId  `json:"id"`
	AccountId       AccountId `json:"accountId"`
	ReportDate      time.Time `json:"reportDate"`
	Content         string    `json:"content"`
	Html            string    `json:"html,omitempty"`
	AuthorFirstName string    `json:"authorFirstName,omitempty"`
	AuthorLastName  string    `json:"authorLastName,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DashboardCounts is the aggregate shown on the landing dashboard.
type DashboardCounts struct {
	Accounts      int `json:"accounts"`
	ActiveSprints int `json:"activeSprints"`
	TeamPlans     int `json:"teamPlans"`
	Reports       int `json:"reports"`
}
