package domain

import (
	"time"

	"github.com/google/uuid"
)

type PlanId = uuid.UUID

// TeamPlan is a single member's objective inside a sprint.
type TeamPlan struct {
	Id        PlanId    `json:"id"`
	SprintId  SprintId  `json:"sprintId"`
	AccountId AccountId `json:"accountId"`
	Objective string    `json:"objective"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
