package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskman/internal/service"
	"taskman/internal/testutil"
)

func str(s string) *string { return &s }

func TestFormatTask_Golden(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, service.Task{
		ID:          3,
		Title:       "Buy milk",
		Description: str("2% please"),
		DueDate:     str("2025-03-01"),
		Status:      service.StatusPending,
	}, false)
	FormatTask(&buf, service.Task{
		ID:     12,
		Title:  "Line\nbreak",
		Status: service.StatusInProgress,
	}, true)
	FormatTask(&buf, service.Task{
		ID:          100,
		Title:       "  ",
		Description: str(""),
		Status:      service.StatusCancelled,
	}, false)

	testutil.Golden(t, "task_lines", buf.Bytes())
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskDetail(&buf, service.Task{
		ID:        7,
		Title:     "Write report",
		Status:    service.StatusDeferred,
		CreatedAt: time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC),
	})

	want := strings.Join([]string{
		Separator,
		"#7 Write report",
		Separator,
		"status:      deferred",
		"due:         -",
		"description: -",
		"created:     2025-01-02 09:30",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestFormatPageFooter(t *testing.T) {
	cases := []struct {
		page       int
		count      int
		prev, next bool
		want       string
	}{
		{1, 5, false, false, ""},
		{1, 25, false, true, "page 1, 25 tasks, next: --page 2\n"},
		{2, 25, true, true, "page 2, 25 tasks, prev: --page 1, next: --page 3\n"},
		{3, 25, true, false, "page 3, 25 tasks, prev: --page 2\n"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		FormatPageFooter(&buf, tc.page, tc.count, tc.prev, tc.next)
		require.Equal(t, tc.want, buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, []service.Task{{ID: 1, Title: "a", Status: service.StatusCompleted}}))
	require.Contains(t, buf.String(), "- id: 1\n")
	require.Contains(t, buf.String(), "status: completed\n")
	require.Contains(t, buf.String(), "description: null\n")
}

func TestNormalizeTitle(t *testing.T) {
	require.Equal(t, "(untitled)", normalizeTitle(" \t"))
	require.Equal(t, "a  b c", normalizeTitle("a\r\nb\nc"))
}
