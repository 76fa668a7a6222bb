package idcard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KINTAI-backend/internal/helpers"
)

func TestCardFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Ramesh", want: "ID-Card-Ramesh.pdf"},
		{name: "spaces to underscores", in: "Ramesh Kumar", want: "ID-Card-Ramesh_Kumar.pdf"},
		{name: "collapses extra whitespace", in: "  Ramesh   Kumar ", want: "ID-Card-Ramesh_Kumar.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CardFilename(tt.in))
		})
	}
}

func TestRenderCard(t *testing.T) {
	dept := "Line 1"
	h := &helpers.Helper{
		ID:          "01HZX0000000000000000000EX",
		EmployeeID:  "EMP-1001",
		Name:        "Ramesh Kumar",
		CompanyID:   "c1",
		Designation: "Fitter",
		JoinDate:    "2023-04-01",
		Status:      helpers.StatusActive,
		Department:  &dept,
	}

	var buf bytes.Buffer
	require.NoError(t, renderCard(&buf, h, "Sharma Contractors"))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestRenderCardNoDepartment(t *testing.T) {
	h := &helpers.Helper{
		ID:          "01HZX0000000000000000000EX",
		EmployeeID:  "EMP-1002",
		Name:        "Suresh Yadav",
		CompanyID:   "c2",
		Designation: "Welder",
		JoinDate:    "2024-01-15",
		Status:      helpers.StatusActive,
	}

	var buf bytes.Buffer
	require.NoError(t, renderCard(&buf, h, "N/A"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
