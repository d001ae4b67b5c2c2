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

func (s *Storage) SaveSprint(sprint domain.Sprint) (domain.SprintId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	sprint.Id = uuid.New()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
            INSERT INTO sprints(id, name, goal, start_date, end_date, is_active)
            VALUES($1, $2, $3, $4, $5, $6)`,
			sprint.Id, sprint.Name, sprint.Goal, sprint.StartDate, sprint.EndDate, sprint.IsActive)
		if err != nil {
			return fmt.Errorf("failed to insert sprint: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return sprint.Id, nil
}

func (s *Storage) SprintById(id domain.SprintId) (domain.Sprint, error) {
	var sp domain.Sprint
	err := s.db.QueryRow(`
        SELECT id, name, goal, start_date, end_date, is_active, created_at
        FROM sprints WHERE id = $1`, id).
		Scan(&sp.Id, &sp.Name, &sp.Goal, &sp.StartDate, &sp.EndDate, &sp.IsActive, &sp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Sprint{}, internal_errors.NotFound("Sprint not found")
		}
		return domain.Sprint{}, fmt.Errorf("failed to query sprint: %w", err)
	}
	return sp, nil
}

func (s *Storage) Sprints() ([]domain.Sprint, error) {
	rows, err := s.db.Query(`
        SELECT id, name, goal, start_date, end_date, is_active, created_at
        FROM sprints ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sprints: %w", err)
	}
	defer rows.Close()

	var sprints []domain.Sprint
	for rows.Next() {
		var sp domain.Sprint
		if err := rows.Scan(&sp.Id, &sp.Name, &sp.Goal, &sp.StartDate, &sp.EndDate, &sp.IsActive, &sp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sprint: %w", err)
		}
		sprints = append(sprints, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sprints: %w", err)
	}
	return sprints, nil
}

func (s *Storage) UpdateSprint(sprint domain.Sprint) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
            UPDATE sprints SET name = $1, goal = $2, start_date = $3, end_date = $4, is_active = $5
            WHERE id = $6`,
			sprint.Name, sprint.Goal, sprint.StartDate, sprint.EndDate, sprint.IsActive, sprint.Id)
		if err != nil {
			return fmt.Errorf("failed to update sprint: %w", err)
		}
		return checkAffected(result, "Sprint not found")
	})
}

func (s *Storage) DeleteSprint(id domain.SprintId) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM sprints WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete sprint: %w", err)
		}
		return checkAffected(result, "Sprint not found")
	})
}
