package helpers

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	DateLayout = "2006-01-02"
)

// DB行に対応（スキャン用）
type helperRow struct {
	ID          string
	EmployeeID  string
	Name        string
	PhotoURL    *string
	CompanyID   string
	Designation string
	JoinDate    string // DATE → "YYYY-MM-DD"
	Status      string
	Department  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service ↔ Store で使うモデル
type Helper struct {
	ID          string // ULID
	EmployeeID  string // 人が読む社員コード（"EMP-1001" 形式が慣例）
	Name        string
	PhotoURL    string // 正規化済みURL
	CompanyID   string
	Designation string
	JoinDate    string
	Status      string
	Department  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r helperRow) toModel() Helper {
	return Helper{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Name:        r.Name,
		PhotoURL:    safePhotoURL(r.Name, r.PhotoURL),
		CompanyID:   r.CompanyID,
		Designation: r.Designation,
		JoinDate:    r.JoinDate,
		Status:      r.Status,
		Department:  r.Department,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func (h Helper) toDTO() HelperResponse {
	return HelperResponse{
		ID:          h.ID,
		EmployeeID:  h.EmployeeID,
		Name:        h.Name,
		PhotoURL:    h.PhotoURL,
		CompanyID:   h.CompanyID,
		Designation: h.Designation,
		JoinDate:    h.JoinDate,
		Status:      h.Status,
		Department:  h.Department,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
