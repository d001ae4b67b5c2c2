package pg

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/krisban/krisban/internal/config"
	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "krisban"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// The container restarts itself once after init, so wait for the
			// readiness log twice.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	cfg := config.New(config.Public{
		Pg: config.Pg{Host: host, Port: containerPort.Int(), User: dbUser, Password: dbPassword, Dbname: dbName},
	}, config.Private{})

	// New applies the embedded migrations on connect.
	storage, err := New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func mustSaveAccount(t *testing.T, studentNumber string) domain.Account {
	t.Helper()
	id, err := storage.SaveAccount(domain.Account{
		StudentNumber: studentNumber,
		FirstName:     "Kris",
		LastName:      "Ban",
		PassHash:      "$2a$10$hash",
		Role:          domain.RoleUser,
		IsFirstLogin:  true,
		IsActive:      true,
	})
	require.NoError(t, err)

	account, err := storage.AccountById(id)
	require.NoError(t, err)
	return account
}

func mustSaveSprint(t *testing.T, name string) domain.Sprint {
	t.Helper()
	start := time.Now().UTC().Truncate(24 * time.Hour)
	id, err := storage.SaveSprint(domain.Sprint{
		Name:      name,
		Goal:      "ship the auth flow",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 14),
		IsActive:  true,
	})
	require.NoError(t, err)

	sprint, err := storage.SprintById(id)
	require.NoError(t, err)
	return sprint
}

func TestSaveAndFetchAccount(t *testing.T) {
	saved := mustSaveAccount(t, "202300001")

	byNumber, err := storage.AccountByStudentNumber("202300001")
	require.NoError(t, err)
	assert.Equal(t, saved.Id, byNumber.Id)
	assert.Equal(t, "Kris", byNumber.FirstName)
	assert.True(t, byNumber.IsFirstLogin)
	assert.True(t, byNumber.IsActive)
	assert.False(t, byNumber.CreatedAt.IsZero())
}

func TestSaveAccountDuplicateStudentNumber(t *testing.T) {
	mustSaveAccount(t, "202300002")

	_, err := storage.SaveAccount(domain.Account{
		StudentNumber: "202300002",
		PassHash:      "$2a$10$hash",
		Role:          domain.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, 409, internal_errors.StatusCode(err))
}

func TestAccountNotFound(t *testing.T) {
	_, err := storage.AccountByStudentNumber("999999999")
	assert.True(t, internal_errors.IsNotFound(err))

	_, err = storage.AccountById(uuid.New())
	assert.True(t, internal_errors.IsNotFound(err))
}

// UpdatePassword must flip the hash and the first-login flag together.
func TestUpdatePassword(t *testing.T) {
	account := mustSaveAccount(t, "202300003")
	require.True(t, account.IsFirstLogin)

	err := storage.UpdatePassword(account.Id, "$2a$10$newhash")
	require.NoError(t, err)

	updated, err := storage.AccountById(account.Id)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$newhash", updated.PassHash)
	assert.False(t, updated.IsFirstLogin)
}

func TestUpdatePasswordUnknownAccount(t *testing.T) {
	err := storage.UpdatePassword(uuid.New(), "$2a$10$newhash")
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestSetActive(t *testing.T) {
	account := mustSaveAccount(t, "202300004")

	require.NoError(t, storage.SetActive(account.Id, false))

	updated, err := storage.AccountById(account.Id)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	require.NoError(t, storage.SetActive(account.Id, true))
	assert.True(t, internal_errors.IsNotFound(storage.SetActive(uuid.New(), false)))
}

func TestSprintCrud(t *testing.T) {
	sprint := mustSaveSprint(t, "Sprint 1")

	sprint.Name = "Sprint 1 (extended)"
	sprint.EndDate = sprint.EndDate.AddDate(0, 0, 7)
	require.NoError(t, storage.UpdateSprint(sprint))

	updated, err := storage.SprintById(sprint.Id)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1 (extended)", updated.Name)

	sprints, err := storage.Sprints()
	require.NoError(t, err)
	assert.NotEmpty(t, sprints)

	require.NoError(t, storage.DeleteSprint(sprint.Id))
	_, err = storage.SprintById(sprint.Id)
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestPlanCrudAndSprintScope(t *testing.T) {
	account := mustSaveAccount(t, "202300005")
	sprint := mustSaveSprint(t, "Sprint plans")
	other := mustSaveSprint(t, "Sprint empty")

	id, err := storage.SavePlan(domain.TeamPlan{
		SprintId:  sprint.Id,
		AccountId: account.Id,
		Objective: "finish the login flow",
	})
	require.NoError(t, err)

	plans, err := storage.PlansBySprint(sprint.Id)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, id, plans[0].Id)
	assert.Equal(t, "finish the login flow", plans[0].Objective)

	empty, err := storage.PlansBySprint(other.Id)
	require.NoError(t, err)
	assert.Empty(t, empty)

	plans[0].Objective = "finish and test the login flow"
	require.NoError(t, storage.UpdatePlan(plans[0]))

	updated, err := storage.PlanById(id)
	require.NoError(t, err)
	assert.Equal(t, "finish and test the login flow", updated.Objective)

	require.NoError(t, storage.DeletePlan(id))
	_, err = storage.PlanById(id)
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestReportsCarryAuthorNames(t *testing.T) {
	account := mustSaveAccount(t, "202300006")

	id, err := storage.SaveReport(domain.Report{
		AccountId:  account.Id,
		ReportDate: time.Now().UTC().Truncate(24 * time.Hour),
		Content:    "## Done\n- login flow",
	})
	require.NoError(t, err)

	report, err := storage.ReportById(id)
	require.NoError(t, err)
	assert.Equal(t, "Kris", report.AuthorFirstName)
	assert.Equal(t, "Ban", report.AuthorLastName)
	assert.Equal(t, "## Done\n- login flow", report.Content)

	mine, err := storage.ReportsByAccount(account.Id)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0].Id)

	require.NoError(t, storage.DeleteReport(id))
	_, err = storage.ReportById(id)
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestDashboardCounts(t *testing.T) {
	before, err := storage.DashboardCounts()
	require.NoError(t, err)

	account := mustSaveAccount(t, "202300007")
	sprint := mustSaveSprint(t, "Sprint counts")
	_, err = storage.SavePlan(domain.TeamPlan{
		SprintId:  sprint.Id,
		AccountId: account.Id,
		Objective: "count me",
	})
	require.NoError(t, err)

	after, err := storage.DashboardCounts()
	require.NoError(t, err)
	assert.Equal(t, before.Accounts+1, after.Accounts)
	assert.Equal(t, before.ActiveSprints+1, after.ActiveSprints)
	assert.Equal(t, before.TeamPlans+1, after.TeamPlans)
}
