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

func (s *Storage) SaveReport(report domain.Report) (domain.ReportId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	report.Id = uuid.New()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
            INSERT INTO reports(id, account_id, report_date, content)
            VALUES($1, $2, $3, $4)`,
			report.Id, report.AccountId, report.ReportDate, report.Content)
		if err != nil {
			return fmt.Errorf("failed to insert report: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return report.Id, nil
}

func (s *Storage) ReportById(id domain.ReportId) (domain.Report, error) {
	var r domain.Report
	err := s.db.QueryRow(`
        SELECT r.id, r.account_id, r.report_date, r.content, r.created_at, a.first_name, a.last_name
        FROM reports r JOIN accounts a ON a.id = r.account_id
        WHERE r.id = $1`, id).
		Scan(&r.Id, &r.AccountId, &r.ReportDate, &r.Content, &r.CreatedAt,
			&r.AuthorFirstName, &r.AuthorLastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Report{}, internal_errors.NotFound("Report not found")
		}
		return domain.Report{}, fmt.Errorf("failed to query report: %w", err)
	}
	return r, nil
}

// Reports returns all reports enriched with author names in one query,
// newest first.
func (s *Storage) Reports() ([]domain.Report, error) {
	rows, err := s.db.Query(`
        SELECT r.id, r.account_id, r.report_date, r.content, r.created_at, a.first_name, a.last_name
        FROM reports r JOIN accounts a ON a.id = r.account_id
        ORDER BY r.report_date DESC, r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// ReportsByAccount returns one member's reports, newest first.
func (s *Storage) ReportsByAccount(accountId domain.AccountId) ([]domain.Report, error) {
	rows, err := s.db.Query(`
        SELECT r.id, r.account_id, r.report_date, r.content, r.created_at, a.first_name, a.last_name
        FROM reports r JOIN accounts a ON a.id = r.account_id
        WHERE r.account_id = $1
        ORDER BY r.report_date DESC, r.created_at DESC`, accountId)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

func scanReports(rows *sql.Rows) ([]domain.Report, error) {
	var reports []domain.Report
	for rows.Next() {
		var r domain.Report
		if err := rows.Scan(&r.Id, &r.AccountId, &r.ReportDate, &r.Content, &r.CreatedAt,
			&r.AuthorFirstName, &r.AuthorLastName); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

func (s *Storage) UpdateReport(report domain.Report) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"UPDATE reports SET content = $1, report_date = $2 WHERE id = $3",
			report.Content, report.ReportDate, report.Id)
		if err != nil {
			return fmt.Errorf("failed to update report: %w", err)
		}
		return checkAffected(result, "Report not found")
	})
}

func (s *Storage) DeleteReport(id domain.ReportId) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM reports WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		return checkAffected(result, "Report not found")
	})
}

// DashboardCounts gathers the landing-page aggregates in a single query.
// Plan and report counts are scoped to active sprints.
func (s *Storage) DashboardCounts() (domain.DashboardCounts, error) {
	var c domain.DashboardCounts
	err := s.db.QueryRow(`
        SELECT
            (SELECT count(*) FROM accounts WHERE is_active),
            (SELECT count(*) FROM sprints WHERE is_active),
            (SELECT count(*) FROM team_plans p JOIN sprints s ON s.id = p.sprint_id WHERE s.is_active),
            (SELECT count(*) FROM reports r WHERE EXISTS (
                SELECT 1 FROM sprints s
                WHERE s.is_active AND r.report_date BETWEEN s.start_date AND s.end_date))`).
		Scan(&c.Accounts, &c.ActiveSprints, &c.TeamPlans, &c.Reports)
	if err != nil {
		return domain.DashboardCounts{}, fmt.Errorf("failed to query dashboard counts: %w", err)
	}
	return c, nil
}
