package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
	"github.com/krisban/krisban/internal/logger"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

type AuthService interface {
	Login(studentNumber, password string) (LoginResult, error)
	ChangePassword(accountId domain.AccountId, newPassword, confirmPassword string) (ChangeResult, error)
	Me(accountId domain.AccountId) (domain.Profile, error)
}

// LoginResult carries exactly one token. When RequiresPasswordChange is set
// the token is a password-reset token good for the change-password operation
// only; otherwise it is a full session token.
type LoginResult struct {
	Token                  string
	RequiresPasswordChange bool
	User                   domain.Profile
}

type ChangeResult struct {
	Token string
	User  domain.Profile
}

type AccountStorage interface {
	SaveAccount(account domain.Account) (domain.AccountId, error)
	AccountByStudentNumber(studentNumber string) (domain.Account, error)
	AccountById(id domain.AccountId) (domain.Account, error)
	ListAccounts() ([]domain.Account, error)
	// UpdatePassword must replace the hash and clear the first-login flag
	// atomically; no caller-visible intermediate state.
	UpdatePassword(id domain.AccountId, newHash string) error
	SetActive(id domain.AccountId, active bool) error
}

type TokenIssuer interface {
	NewSessionToken(account *domain.Account) (string, error)
	NewPasswordResetToken(account *domain.Account) (string, error)
}

type Auth struct {
	storage AccountStorage
	tokens  TokenIssuer
}

func NewAuth(storage AccountStorage, tokens TokenIssuer) *Auth {
	return &Auth{storage: storage, tokens: tokens}
}

// Login verifies credentials and issues a token matching the account state:
// a 15-minute password-reset token while the first login is pending, a full
// session token afterwards. An account pending its first password change
// never receives a session token here.
func (a *Auth) Login(studentNumber, password string) (LoginResult, error) {
	if studentNumber == "" || password == "" {
		return LoginResult{}, internal_errors.Validation("Student number and password are required")
	}

	account, err := a.storage.AccountByStudentNumber(studentNumber)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			// same error as wrong password, to not leak existing accounts
			return LoginResult{}, internal_errors.InvalidCredentials()
		}
		return LoginResult{}, err
	}

	if !account.IsActive {
		return LoginResult{}, internal_errors.AccountDisabled()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PassHash), []byte(password)); err != nil {
		return LoginResult{}, internal_errors.InvalidCredentials()
	}

	if account.IsFirstLogin {
		token, err := a.tokens.NewPasswordResetToken(&account)
		if err != nil {
			logger.Log.Error("failed to create reset token", "account_id", account.Id, "error", err)
			return LoginResult{}, err
		}
		return LoginResult{Token: token, RequiresPasswordChange: true, User: account.Profile()}, nil
	}

	token, err := a.tokens.NewSessionToken(&account)
	if err != nil {
		logger.Log.Error("failed to create session token", "account_id", account.Id, "error", err)
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: account.Profile()}, nil
}

// ChangePassword validates the new password, persists its hash together with
// the cleared first-login flag, and upgrades the caller to a session token.
// The presented token's tier is not re-checked here: any valid token naming
// the account may change its password (policy carried over from the product;
// see DESIGN.md).
func (a *Auth) ChangePassword(accountId domain.AccountId, newPassword, confirmPassword string) (ChangeResult, error) {
	if newPassword == "" || confirmPassword == "" {
		return ChangeResult{}, internal_errors.Validation("Both password fields are required")
	}
	if newPassword != confirmPassword {
		return ChangeResult{}, internal_errors.Validation("Passwords do not match")
	}
	if len(newPassword) < MinPasswordLen {
		return ChangeResult{}, internal_errors.Validation("Password must be at least 6 characters")
	}

	account, err := a.storage.AccountById(accountId)
	if err != nil {
		return ChangeResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "account_id", account.Id, "error", err)
		return ChangeResult{}, err
	}

	if err := a.storage.UpdatePassword(account.Id, string(hash)); err != nil {
		return ChangeResult{}, err
	}
	account.PassHash = string(hash)
	account.IsFirstLogin = false

	token, err := a.tokens.NewSessionToken(&account)
	if err != nil {
		logger.Log.Error("failed to create session token", "account_id", account.Id, "error", err)
		return ChangeResult{}, err
	}
	return ChangeResult{Token: token, User: account.Profile()}, nil
}

func (a *Auth) Me(accountId domain.AccountId) (domain.Profile, error) {
	account, err := a.storage.AccountById(accountId)
	if err != nil {
		return domain.Profile{}, err
	}
	return account.Profile(), nil
}
