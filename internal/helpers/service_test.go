package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextEmployeeCode(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  string
	}{
		{name: "no codes", codes: nil, want: "EMP-1001"},
		{name: "only non numeric", codes: []string{"STAFF-3", "EMP-abc"}, want: "EMP-1001"},
		{name: "single code", codes: []string{"EMP-1001"}, want: "EMP-1002"},
		{name: "max wins regardless of order", codes: []string{"EMP-1005", "EMP-1020", "EMP-1011"}, want: "EMP-1021"},
		{name: "small numeric suffix kept as is", codes: []string{"EMP-7"}, want: "EMP-8"},
		{name: "garbage mixed in", codes: []string{"EMP-1003", "EMP-", "TMP-9999", "EMP-10x"}, want: "EMP-1004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextEmployeeCode(tt.codes))
		})
	}
}

func TestValidateCreate(t *testing.T) {
	valid := CreateHelperRequest{
		EmployeeID:  "EMP-1001",
		Name:        "Ramesh Kumar",
		CompanyID:   "c1",
		Designation: "Fitter",
		JoinDate:    "2023-04-01",
		Status:      StatusActive,
	}
	assert.Empty(t, validateCreate(valid))

	tests := []struct {
		name   string
		mutate func(*CreateHelperRequest)
		field  string
	}{
		{name: "missing employee id", mutate: func(in *CreateHelperRequest) { in.EmployeeID = "  " }, field: "employee_id"},
		{name: "missing name", mutate: func(in *CreateHelperRequest) { in.Name = "" }, field: "name"},
		{name: "missing company", mutate: func(in *CreateHelperRequest) { in.CompanyID = "" }, field: "company_id"},
		{name: "missing designation", mutate: func(in *CreateHelperRequest) { in.Designation = "" }, field: "designation"},
		{name: "missing join date", mutate: func(in *CreateHelperRequest) { in.JoinDate = "" }, field: "join_date"},
		{name: "bad join date", mutate: func(in *CreateHelperRequest) { in.JoinDate = "01/04/2023" }, field: "join_date"},
		{name: "bad status", mutate: func(in *CreateHelperRequest) { in.Status = "retired" }, field: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			fields := validateCreate(in)
			assert.Len(t, fields, 1)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestSafePhotoURL(t *testing.T) {
	good := "https://example.com/photos/ramesh.jpg"
	dead := "https://i.pravatar.cc/150?img=3"
	empty := ""

	assert.Equal(t, good, safePhotoURL("Ramesh Kumar", &good))

	fallback := avatarBaseURL + "Ramesh+Kumar"
	assert.Equal(t, fallback, safePhotoURL("Ramesh Kumar", &dead))
	assert.Equal(t, fallback, safePhotoURL("Ramesh Kumar", &empty))
	assert.Equal(t, fallback, safePhotoURL("Ramesh Kumar", nil))
}
