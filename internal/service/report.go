package service

import (
	"bytes"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
	"github.com/krisban/krisban/internal/logger"
)

type ReportService interface {
	Create(report domain.Report) (domain.Report, error)
	List() ([]domain.Report, error)
	ListByAccount(accountId domain.AccountId) ([]domain.Report, error)
	Update(report domain.Report, requester domain.AccountId, admin bool) error
	Delete(id domain.ReportId, requester domain.AccountId, admin bool) error
}

type ReportStorage interface {
	SaveReport(report domain.Report) (domain.ReportId, error)
	ReportById(id domain.ReportId) (domain.Report, error)
	Reports() ([]domain.Report, error)
	ReportsByAccount(accountId domain.AccountId) ([]domain.Report, error)
	UpdateReport(report domain.Report) error
	DeleteReport(id domain.ReportId) error
}

type Report struct {
	storage ReportStorage
	policy  *bluemonday.Policy
}

func NewReport(storage ReportStorage) *Report {
	return &Report{storage: storage, policy: bluemonday.UGCPolicy()}
}

func validateReportContent(content string) error {
	if content == "" {
		return internal_errors.Validation("Report content is required")
	}
	if utf8.RuneCountInString(content) > 10_000 {
		return internal_errors.Validation("Report content is too long")
	}
	return nil
}

// render converts the author's markdown to HTML and strips anything the
// sanitizer policy does not allow. Raw markdown stays in storage.
func (s *Report) render(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		logger.Log.Error("failed to render report markdown", "error", err)
		return ""
	}
	return s.policy.Sanitize(buf.String())
}

func (s *Report) Create(report domain.Report) (domain.Report, error) {
	if err := validateReportContent(report.Content); err != nil {
		return domain.Report{}, err
	}
	id, err := s.storage.SaveReport(report)
	if err != nil {
		return domain.Report{}, err
	}
	created, err := s.storage.ReportById(id)
	if err != nil {
		return domain.Report{}, err
	}
	created.Html = s.render(created.Content)
	return created, nil
}

func (s *Report) List() ([]domain.Report, error) {
	reports, err := s.storage.Reports()
	if err != nil {
		return nil, err
	}
	for i := range reports {
		reports[i].Html = s.render(reports[i].Content)
	}
	return reports, nil
}

func (s *Report) ListByAccount(accountId domain.AccountId) ([]domain.Report, error) {
	reports, err := s.storage.ReportsByAccount(accountId)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		reports[i].Html = s.render(reports[i].Content)
	}
	return reports, nil
}

func (s *Report) Update(report domain.Report, requester domain.AccountId, admin bool) error {
	if err := validateReportContent(report.Content); err != nil {
		return err
	}
	existing, err := s.storage.ReportById(report.Id)
	if err != nil {
		return err
	}
	if !admin && existing.AccountId != requester {
		return internal_errors.Forbidden("Can't edit another member's report")
	}
	return s.storage.UpdateReport(report)
}

func (s *Report) Delete(id domain.ReportId, requester domain.AccountId, admin bool) error {
	existing, err := s.storage.ReportById(id)
	if err != nil {
		return err
	}
	if !admin && existing.AccountId != requester {
		return internal_errors.Forbidden("Can't delete another member's report")
	}
	return s.storage.DeleteReport(id)
}
