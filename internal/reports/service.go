package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"KINTAI-backend/internal/attendance"
	"KINTAI-backend/internal/contractors"
	"KINTAI-backend/internal/helpers"
)

// ===== Error model (helpers/attendance と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		if api.Code == CodeInvalidArgument {
			return 400
		}
		return 500
	}
	return 500
}

// ===== Service =====
// 集計エンジン自体は純関数。ここはスナップショットの取得とエンジン呼び出しだけを担う。

type Service struct {
	db         *sql.DB
	helpers    *helpers.Store
	companies  *contractors.Store
	attendance *attendance.Store
	now        func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:         db,
		helpers:    helpers.NewStore(db),
		companies:  contractors.NewStore(db),
		attendance: attendance.NewStore(db),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Monthly: 月次レポートを1回の集計で作る。
// CSV/Excel/PDFはこの結果を共有するため、出力形式間で値がずれない。
func (s *Service) Monthly(ctx context.Context, month, companyID string) (MonthlyReport, error) {
	first, err := time.ParseInLocation(MonthLayout, month, time.UTC)
	if err != nil {
		return MonthlyReport{}, ErrInvalid("month must be YYYY-MM")
	}
	from := first.Format("2006-01-02")
	to := first.AddDate(0, 1, -1).Format("2006-01-02")

	hs, err := s.helpers.List(ctx, helpers.ListQuery{})
	if err != nil {
		return MonthlyReport{}, ErrInternal("failed to fetch helpers")
	}
	cs, err := s.companies.List(ctx)
	if err != nil {
		return MonthlyReport{}, ErrInternal("failed to fetch companies")
	}
	records, err := s.attendance.ListRange(ctx, from, to)
	if err != nil {
		return MonthlyReport{}, ErrInternal("failed to fetch attendance")
	}

	return BuildMonthlyReport(hs, cs, records, month, companyID, s.now()), nil
}
