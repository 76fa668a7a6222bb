package helpers

import "time"

// ===== Requests =====

type CreateHelperRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	CompanyID   string  `json:"company_id"`
	Designation string  `json:"designation"`
	JoinDate    string  `json:"join_date"` // YYYY-MM-DD
	Status      string  `json:"status"`    // 省略時 active
	Department  *string `json:"department,omitempty"`
}

// 部分更新。nil のフィールドは「変更しない」
type UpdateHelperRequest struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	CompanyID   *string `json:"company_id,omitempty"`
	Designation *string `json:"designation,omitempty"`
	JoinDate    *string `json:"join_date,omitempty"`
	Status      *string `json:"status,omitempty"`
	Department  *string `json:"department,omitempty"`
}

type ListQuery struct {
	CompanyID *string
	Status    *string
	Search    *string // 名前または社員コードの部分一致
}

// ===== Responses =====

type HelperResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Name        string    `json:"name"`
	PhotoURL    string    `json:"photo_url"`
	CompanyID   string    `json:"company_id"`
	Designation string    `json:"designation"`
	JoinDate    string    `json:"join_date"`
	Status      string    `json:"status"`
	Department  *string   `json:"department,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NextCodeResponse struct {
	EmployeeID string `json:"employee_id"`
}
