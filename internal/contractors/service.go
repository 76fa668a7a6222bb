package contractors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ===== Error model (helpers/attendance と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====
// 契約会社はストア側の管理で作成・削除される（このAPIからは読み取りのみ）。

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, store: NewStore(db)}
}

// GET /companies
func (s *Service) List(ctx context.Context) ([]ContractorResponse, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, ErrInternal("failed to fetch companies")
	}
	out := make([]ContractorResponse, 0, len(list))
	for i := 0; i < len(list); i++ {
		out = append(out, list[i].toDTO())
	}
	return out, nil
}

// 他パッケージから名前解決に使う
func (s *Service) Get(ctx context.Context, id string) (*Contractor, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound("company not found")
		}
		return nil, ErrInternal("failed to fetch company")
	}
	return c, nil
}
