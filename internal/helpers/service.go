package helpers

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"KINTAI-backend/internal/platform/db"
)

// ===== Error model (contractors/attendance と同型 + フィールド別エラー) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeValidation      Code = "VALIDATION"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

// フォーム検証エラー。fields はフィールド名 → メッセージ
func ErrValidation(fields map[string]string) *APIError {
	return &APIError{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument, CodeValidation:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== id generator =====

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
	id    ulidGen
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, store: NewStore(db), id: ulidGen{}}
}

// GET /helpers
func (s *Service) List(ctx context.Context, q ListQuery) ([]HelperResponse, error) {
	list, err := s.store.List(ctx, q)
	if err != nil {
		return nil, ErrInternal("failed to fetch helpers")
	}
	out := make([]HelperResponse, 0, len(list))
	for i := 0; i < len(list); i++ {
		out = append(out, list[i].toDTO())
	}
	return out, nil
}

// GET /helpers/:id
func (s *Service) Get(ctx context.Context, id string) (HelperResponse, error) {
	h, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return HelperResponse{}, ErrNotFound("helper not found")
		}
		return HelperResponse{}, ErrInternal("failed to fetch helper")
	}
	return h.toDTO(), nil
}

// 他パッケージ（IDカード等）から使うモデル取得
func (s *Service) GetModel(ctx context.Context, id string) (*Helper, error) {
	h, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound("helper not found")
		}
		return nil, ErrInternal("failed to fetch helper")
	}
	return h, nil
}

// GET /helpers/next-code
func (s *Service) NextEmployeeCode(ctx context.Context) (NextCodeResponse, error) {
	codes, err := s.store.ListEmployeeCodes(ctx)
	if err != nil {
		return NextCodeResponse{}, ErrInternal("failed to fetch helpers")
	}
	return NextCodeResponse{EmployeeID: nextEmployeeCode(codes)}, nil
}

// POST /helpers
func (s *Service) Create(ctx context.Context, in CreateHelperRequest) (HelperResponse, error) {
	if in.Status == "" {
		in.Status = StatusActive
	}
	if fields := validateCreate(in); len(fields) > 0 {
		return HelperResponse{}, ErrValidation(fields)
	}

	// 重複チェックを通ってから書き込む（検証NG時はネットワーク書き込みなし）
	dup, err := s.store.ExistsEmployeeCode(ctx, in.EmployeeID, "")
	if err != nil {
		return HelperResponse{}, ErrInternal("failed to add helper")
	}
	if dup {
		return HelperResponse{}, ErrValidation(map[string]string{"employee_id": "Helper ID already exists"})
	}

	id, err := s.id.New()
	if err != nil {
		return HelperResponse{}, ErrInternal("failed to generate id")
	}

	h := Helper{
		ID:          id,
		EmployeeID:  in.EmployeeID,
		Name:        in.Name,
		CompanyID:   in.CompanyID,
		Designation: in.Designation,
		JoinDate:    in.JoinDate,
		Status:      in.Status,
		Department:  in.Department,
	}
	if err := s.store.Insert(ctx, h, in.PhotoURL); err != nil {
		return HelperResponse{}, ErrInternal("failed to add helper")
	}

	// 確定行（写真URL正規化込み）を返す
	created, err := s.store.GetByID(ctx, id)
	if err != nil {
		return HelperResponse{}, ErrInternal("inserted but not found")
	}
	return created.toDTO(), nil
}

// PUT /helpers/:id
func (s *Service) Update(ctx context.Context, id string, in UpdateHelperRequest) (HelperResponse, error) {
	fields := map[string]string{}
	if in.EmployeeID != nil {
		if strings.TrimSpace(*in.EmployeeID) == "" {
			fields["employee_id"] = "Helper ID is required"
		} else {
			dup, err := s.store.ExistsEmployeeCode(ctx, *in.EmployeeID, id)
			if err != nil {
				return HelperResponse{}, ErrInternal("failed to update helper")
			}
			if dup {
				fields["employee_id"] = "Helper ID already exists"
			}
		}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fields["name"] = "Name is required"
	}
	if in.CompanyID != nil && *in.CompanyID == "" {
		fields["company_id"] = "Contractor is required"
	}
	if in.Designation != nil && strings.TrimSpace(*in.Designation) == "" {
		fields["designation"] = "Designation is required"
	}
	if in.JoinDate != nil {
		if _, err := time.ParseInLocation(DateLayout, *in.JoinDate, time.UTC); err != nil {
			fields["join_date"] = "Join date must be YYYY-MM-DD"
		}
	}
	if in.Status != nil && *in.Status != StatusActive && *in.Status != StatusInactive {
		fields["status"] = "Status must be active or inactive"
	}
	if len(fields) > 0 {
		return HelperResponse{}, ErrValidation(fields)
	}

	updated, err := s.store.Update(ctx, id, in)
	if err != nil {
		if err == sql.ErrNoRows {
			return HelperResponse{}, ErrNotFound("helper not found")
		}
		return HelperResponse{}, ErrInternal("failed to update helper")
	}
	return updated.toDTO(), nil
}

// DELETE /helpers/:id
// ヘルパーの勤怠行も同一Txで削除する（レポートに残骸を残さない）。
func (s *Service) Delete(ctx context.Context, id string) error {
	var found bool
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		var err error
		found, err = NewStore(tx).DeleteWithAttendance(ctx, id)
		return err
	})
	if err != nil {
		return ErrInternal("failed to delete helper")
	}
	if !found {
		return ErrNotFound("helper not found")
	}
	return nil
}

// ===== validation / suggestion =====

func validateCreate(in CreateHelperRequest) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(in.EmployeeID) == "" {
		fields["employee_id"] = "Helper ID is required"
	}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Name is required"
	}
	if in.CompanyID == "" {
		fields["company_id"] = "Contractor is required"
	}
	if strings.TrimSpace(in.Designation) == "" {
		fields["designation"] = "Designation is required"
	}
	if in.JoinDate == "" {
		fields["join_date"] = "Join date is required"
	} else if _, err := time.ParseInLocation(DateLayout, in.JoinDate, time.UTC); err != nil {
		fields["join_date"] = "Join date must be YYYY-MM-DD"
	}
	if in.Status != StatusActive && in.Status != StatusInactive {
		fields["status"] = "Status must be active or inactive"
	}
	return fields
}

// nextEmployeeCode: 既存コードの "EMP-<n>" 数値部の最大+1 を提案する。
// 数値部を持つコードが1つもなければ EMP-1001 から始める。
func nextEmployeeCode(codes []string) string {
	highest := -1
	for _, code := range codes {
		n, err := strconv.Atoi(strings.TrimPrefix(code, "EMP-"))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	if highest < 0 {
		return "EMP-1001"
	}
	return fmt.Sprintf("EMP-%d", highest+1)
}
