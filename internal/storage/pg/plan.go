package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
)

func (s *Storage) SavePlan(plan domain.TeamPlan) (domain.PlanId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	plan.Id = uuid.New()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
            INSERT INTO team_plans(id, sprint_id, account_id, objective)
            VALUES($1, $2, $3, $4)`,
			plan.Id, plan.SprintId, plan.AccountId, plan.Objective)
		if err != nil {
			return fmt.Errorf("failed to insert team plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return plan.Id, nil
}

func (s *Storage) PlanById(id domain.PlanId) (domain.TeamPlan, error) {
	var p domain.TeamPlan
	err := s.db.QueryRow(`
        SELECT id, sprint_id, account_id, objective, created_at, updated_at
        FROM team_plans WHERE id = $1`, id).
		Scan(&p.Id, &p.SprintId, &p.AccountId, &p.Objective, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TeamPlan{}, internal_errors.NotFound("Team plan not found")
		}
		return domain.TeamPlan{}, fmt.Errorf("failed to query team plan: %w", err)
	}
	return p, nil
}

func (s *Storage) PlansBySprint(sprintId domain.SprintId) ([]domain.TeamPlan, error) {
	rows, err := s.db.Query(`
        SELECT id, sprint_id, account_id, objective, created_at, updated_at
        FROM team_plans WHERE sprint_id = $1 ORDER BY created_at`, sprintId)
	if err != nil {
		return nil, fmt.Errorf("failed to query team plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.TeamPlan
	for rows.Next() {
		var p domain.TeamPlan
		if err := rows.Scan(&p.Id, &p.SprintId, &p.AccountId, &p.Objective, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team plans: %w", err)
	}
	return plans, nil
}

func (s *Storage) UpdatePlan(plan domain.TeamPlan) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
            UPDATE team_plans SET objective = $1, updated_at = now() WHERE id = $2`,
			plan.Objective, plan.Id)
		if err != nil {
			return fmt.Errorf("failed to update team plan: %w", err)
		}
		return checkAffected(result, "Team plan not found")
	})
}

func (s *Storage) DeletePlan(id domain.PlanId) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM team_plans WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete team plan: %w", err)
		}
		return checkAffected(result, "Team plan not found")
	})
}
