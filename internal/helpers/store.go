package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const selectColumns = `
	id, employee_id, name, photo_url, company_id, designation,
	DATE_FORMAT(join_date, '%Y-%m-%d') AS join_date,
	status, department, created_at, updated_at`

func scanRow(sc interface{ Scan(dest ...any) error }) (helperRow, error) {
	var r helperRow
	err := sc.Scan(
		&r.ID, &r.EmployeeID, &r.Name, &r.PhotoURL, &r.CompanyID, &r.Designation,
		&r.JoinDate, &r.Status, &r.Department, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// List: 条件に応じて動的WHERE。一覧は常に名前順（UI側の並び替え前提をDBで保証する）
func (s *Store) List(ctx context.Context, q ListQuery) ([]Helper, error) {
	var (
		sb     strings.Builder
		args   []any
		wheres []string
	)

	sb.WriteString("SELECT" + selectColumns + " FROM employees")

	if q.CompanyID != nil && *q.CompanyID != "" && *q.CompanyID != "all" {
		wheres = append(wheres, "company_id = ?")
		args = append(args, *q.CompanyID)
	}
	if q.Status != nil && *q.Status != "" && *q.Status != "all" {
		wheres = append(wheres, "status = ?")
		args = append(args, *q.Status)
	}
	if q.Search != nil && *q.Search != "" {
		wheres = append(wheres, "(name LIKE ? OR employee_id LIKE ?)")
		like := "%" + *q.Search + "%"
		args = append(args, like, like)
	}
	if len(wheres) > 0 {
		sb.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	sb.WriteString(" ORDER BY name ASC, employee_id ASC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Helper
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, id string) (*Helper, error) {
	row := s.db.QueryRowContext(ctx, "SELECT"+selectColumns+" FROM employees WHERE id = ?", id)
	r, err := scanRow(row)
	if err != nil {
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

// ExistsEmployeeCode: 社員コードの重複チェック。編集中の行は excludeID で除外。
func (s *Store) ExistsEmployeeCode(ctx context.Context, code, excludeID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
	SELECT 1 FROM employees
	WHERE employee_id = ? AND id <> ? LIMIT 1`, code, excludeID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListEmployeeCodes: 次コード提案用
func (s *Store) ListEmployeeCodes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT employee_id FROM employees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, h Helper, rawPhotoURL *string) error {
	const q = `
	INSERT INTO employees
	(id, employee_id, name, photo_url, company_id, designation, join_date, status, department, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	_, err := s.db.ExecContext(ctx, q,
		h.ID, h.EmployeeID, h.Name, strOrNil(rawPhotoURL), h.CompanyID,
		h.Designation, h.JoinDate, h.Status, strOrNil(h.Department),
	)
	return err
}

// Update: nil でないフィールドだけ動的SET。更新後の確定行を返す。
func (s *Store) Update(ctx context.Context, id string, in UpdateHelperRequest) (*Helper, error) {
	sets := []string{}
	args := []any{}
	if in.EmployeeID != nil {
		sets = append(sets, "employee_id = ?")
		args = append(args, *in.EmployeeID)
	}
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.PhotoURL != nil {
		sets = append(sets, "photo_url = ?")
		args = append(args, strOrNil(in.PhotoURL))
	}
	if in.CompanyID != nil {
		sets = append(sets, "company_id = ?")
		args = append(args, *in.CompanyID)
	}
	if in.Designation != nil {
		sets = append(sets, "designation = ?")
		args = append(args, *in.Designation)
	}
	if in.JoinDate != nil {
		sets = append(sets, "join_date = ?")
		args = append(args, *in.JoinDate)
	}
	if in.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *in.Status)
	}
	if in.Department != nil {
		sets = append(sets, "department = ?")
		args = append(args, strOrNil(in.Department))
	}
	if len(sets) == 0 {
		// 変更なしでも現行値を返す
		return s.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE employees SET %s WHERE id = ?`, strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		// MySQLは同値更新でも affected=0 を返すため存在確認で切り分ける
		if _, gerr := s.GetByID(ctx, id); gerr != nil {
			return nil, gerr
		}
	}
	return s.GetByID(ctx, id)
}

// DeleteWithAttendance: ヘルパー本体と勤怠行を同一Txで削除する（孤児行を残さない）。
// 呼び出し側が Tx の DBTX を渡すこと。
func (s *Store) DeleteWithAttendance(ctx context.Context, id string) (bool, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attendance WHERE employee_id = ?`, id); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// ===== helpers =====

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	if *s == "" {
		return nil
	}
	return *s
}
