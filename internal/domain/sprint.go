package domain

import (
	"time"

	"github.com/google/uuid"
)

type SprintId = uuid.UUID

type Sprint struct {
	Id        SprintId  `json:"id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
