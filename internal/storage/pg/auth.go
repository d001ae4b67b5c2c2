package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// =========================================================================
// Public methods (satisfy the service.AccountStorage interface)
// =========================================================================

// SaveAccount inserts a new account and returns its generated id.
func (s *Storage) SaveAccount(account domain.Account) (domain.AccountId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	account.Id = uuid.New()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return s.saveAccount(tx, account)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return account.Id, nil
}

// AccountByStudentNumber fetches an account by its login lookup key.
func (s *Storage) AccountByStudentNumber(studentNumber string) (domain.Account, error) {
	return s.account(s.db, "student_number = $1", studentNumber)
}

// AccountById fetches an account by its internal id.
func (s *Storage) AccountById(id domain.AccountId) (domain.Account, error) {
	return s.account(s.db, "id = $1", id)
}

func (s *Storage) ListAccounts() ([]domain.Account, error) {
	rows, err := s.db.Query(`
        SELECT id, student_number, first_name, last_name, password_hash, role, is_first_login, is_active, created_at
        FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.Id, &a.StudentNumber, &a.FirstName, &a.LastName, &a.PassHash,
			&a.Role, &a.IsFirstLogin, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

// UpdatePassword replaces the password hash and clears the first-login flag
// in a single statement, so no reader can observe one without the other.
func (s *Storage) UpdatePassword(id domain.AccountId, newHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePassword(tx, id, newHash)
	})
}

// SetActive enables or disables an account.
func (s *Storage) SetActive(id domain.AccountId, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE accounts SET is_active = $1 WHERE id = $2", active, id)
		if err != nil {
			return fmt.Errorf("failed to update account status: %w", err)
		}
		return checkAffected(result, "Account not found")
	})
}

// =========================================================================
// Internal methods (core database logic, transaction-agnostic)
// =========================================================================

func (s *Storage) saveAccount(q Querier, account domain.Account) error {
	_, err := q.Exec(`
        INSERT INTO accounts(id, student_number, first_name, last_name, password_hash, role, is_first_login, is_active)
        VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.Id, account.StudentNumber, account.FirstName, account.LastName,
		account.PassHash, account.Role, account.IsFirstLogin, account.IsActive)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return internal_errors.Conflict("Student number already registered")
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (s *Storage) account(q Querier, where string, arg any) (domain.Account, error) {
	var a domain.Account
	err := q.QueryRow(`
        SELECT id, student_number, first_name, last_name, password_hash, role, is_first_login, is_active, created_at
        FROM accounts WHERE `+where, arg).
		Scan(&a.Id, &a.StudentNumber, &a.FirstName, &a.LastName, &a.PassHash,
			&a.Role, &a.IsFirstLogin, &a.IsActive, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, internal_errors.NotFound("Account not found")
		}
		return domain.Account{}, fmt.Errorf("failed to query account: %w", err)
	}
	return a, nil
}

func (s *Storage) updatePassword(q Querier, id domain.AccountId, newHash string) error {
	result, err := q.Exec(
		"UPDATE accounts SET password_hash = $1, is_first_login = FALSE WHERE id = $2",
		newHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return checkAffected(result, "Account not found")
}

func checkAffected(result sql.Result, notFoundMessage string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound(notFoundMessage)
	}
	return nil
}
