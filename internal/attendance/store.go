package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const selectColumns = `
	id, employee_id, DATE_FORMAT(date, '%Y-%m-%d') AS date, status, shift,
	overtime_hours, check_in_time, check_out_time, department, created_at, updated_at`

func scanRow(sc interface{ Scan(dest ...any) error }) (attendanceRow, error) {
	var r attendanceRow
	err := sc.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.Status, &r.Shift,
		&r.OvertimeHours, &r.CheckInTime, &r.CheckOutTime, &r.Department,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Upsert: employee_id + date（UNIQUE）でINSERTまたはUPDATE。
// 返り値: 確定行（id含む）、created=true（新規）/false（更新）
// 既存行の id と created_at は保持され、それ以外の列は丸ごと置き換わる。
func (s *Store) Upsert(ctx context.Context, id string, a Attendance) (Attendance, bool, error) {
	// INSERT ... ON DUPLICATE KEY UPDATE
	// - 新規: RowsAffected = 1
	// - 既存更新: RowsAffected = 2
	const q = `
	INSERT INTO attendance
	(id, employee_id, date, status, shift, overtime_hours, check_in_time, check_out_time, department, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON DUPLICATE KEY UPDATE
	status         = VALUES(status),
	shift          = VALUES(shift),
	overtime_hours = VALUES(overtime_hours),
	check_in_time  = VALUES(check_in_time),
	check_out_time = VALUES(check_out_time),
	department     = VALUES(department),
	updated_at     = CURRENT_TIMESTAMP`

	res, err := s.db.ExecContext(ctx, q,
		id, a.EmployeeID, a.Date, a.Status, strOrNil(a.Shift), a.OvertimeHours,
		strOrNil(a.CheckInTime), strOrNil(a.CheckOutTime), strOrNil(a.Department),
	)
	if err != nil {
		return Attendance{}, false, err
	}
	aff, _ := res.RowsAffected()
	created := (aff == 1)

	// 最終行を取得（UNIQUEキーで）
	final, err := s.GetByKey(ctx, a.EmployeeID, a.Date)
	if err != nil {
		if err == sql.ErrNoRows {
			return Attendance{}, created, fmt.Errorf("upserted but not found")
		}
		return Attendance{}, created, err
	}
	return *final, created, nil
}

// GetByKey: (employee_id, date) の行を1件取得
func (s *Store) GetByKey(ctx context.Context, employeeID, date string) (*Attendance, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT`+selectColumns+`
	FROM attendance
	WHERE employee_id = ? AND date = ?`, employeeID, date)
	r, err := scanRow(row)
	if err != nil {
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

// GetHelperInfo: 勤怠登録時の存在確認と部門の引き写し用
func (s *Store) GetHelperInfo(ctx context.Context, employeeID string) (department *string, active bool, err error) {
	var status string
	err = s.db.QueryRowContext(ctx, `
	SELECT department, status FROM employees WHERE id = ?`, employeeID,
	).Scan(&department, &status)
	if err != nil {
		return nil, false, err
	}
	return department, status == "active", nil
}

// List: 条件に応じて動的WHERE + ORDER + LIMIT/OFFSET
func (s *Store) List(ctx context.Context, q ListQuery) ([]Attendance, int64, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`
	SELECT` + selectColumns + `
	FROM attendance
	`)
	// WHERE
	if q.EmployeeID != nil && *q.EmployeeID != "" {
		wheres = append(wheres, "employee_id = ?")
		args = append(args, *q.EmployeeID)
	}
	if q.On != nil && *q.On != "" {
		wheres = append(wheres, "date = ?")
		args = append(args, normalizeDateString(*q.On))
	} else {
		if q.From != nil && *q.From != "" {
			wheres = append(wheres, "date >= ?")
			args = append(args, normalizeDateString(*q.From))
		}
		if q.To != nil && *q.To != "" {
			wheres = append(wheres, "date <= ?")
			args = append(args, normalizeDateString(*q.To))
		}
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	// ORDER
	switch q.Sort {
	case SortDateAsc:
		buf.WriteString(" ORDER BY date ASC, employee_id ASC")
	case SortUpdatedDesc:
		buf.WriteString(" ORDER BY updated_at DESC, id DESC")
	default:
		buf.WriteString(" ORDER BY date DESC, employee_id ASC")
	}

	// LIMIT/OFFSET
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	buf.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Attendance
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// COUNT（ORDER BY より前までを再構築）
	var cntBuf bytes.Buffer
	cntBuf.WriteString("SELECT COUNT(*) FROM attendance")
	if len(wheres) > 0 {
		cntBuf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cntBuf.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListRange: レポート集計用。期間内の全行をページングなしで返す。
func (s *Store) ListRange(ctx context.Context, from, to string) ([]Attendance, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT`+selectColumns+`
	FROM attendance
	WHERE date BETWEEN ? AND ?
	ORDER BY date ASC, employee_id ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attendance
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

// CountByStatus: 指定日のステータス別件数
func (s *Store) CountByStatus(ctx context.Context, date string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT status, COUNT(*) FROM attendance
	WHERE date = ?
	GROUP BY status`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[st] = n
	}
	return out, rows.Err()
}

// CountActiveHelpers: 在籍中ヘルパー数
func (s *Store) CountActiveHelpers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'active'`).Scan(&n)
	return n, err
}

// PresentSeries: 期間の日別出勤数（存在する日だけ返る。ゼロ埋めはサービス側）
func (s *Store) PresentSeries(ctx context.Context, from, to string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT DATE_FORMAT(date, '%Y-%m-%d') AS d, COUNT(*) AS cnt
	FROM attendance
	WHERE status = 'present' AND date BETWEEN ? AND ?
	GROUP BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var d string
		var n int
		if err := rows.Scan(&d, &n); err != nil {
			return nil, err
		}
		out[d] = n
	}
	return out, rows.Err()
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

func normalizeDateString(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "today" {
		return time.Now().UTC().Format(DateLayout)
	}
	// assume YYYY-MM-DD
	return v
}
