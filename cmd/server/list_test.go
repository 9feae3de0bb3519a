package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refbooks/internal/refbook"
)

func TestPrintSummaries(t *testing.T) {
	start := refbook.MustDate("2023-08-10")
	var buf bytes.Buffer
	err := printSummaries(&buf, []refbook.Summary{
		{Directory: refbook.Directory{ID: 1, Code: "1", Name: "Специальности"}, CurrentVersion: "1.1", StartDate: &start},
		{Directory: refbook.Directory{ID: 2, Code: "2", Name: "Должности"}},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "CODE", "NAME", "VERSION", "START_DATE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "1", "Специальности", "1.1", "2023-08-10"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "2", "Должности"}, strings.Fields(lines[2]))
}

func TestListCommandOnMemoryStore(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"list",
		"--db-driver", "memory",
		"--seed-dir", "../../reference/refbooks",
		"--log-level", "error",
		"--date", "2023-08-10",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		listDate = ""
	})

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Специальности медицинских работников")
	assert.Equal(t, "2023-08-10", lastField(lines[1]))
	// у B на эту дату версии ещё нет
	assert.Equal(t, "работников", lastField(lines[2]))
}

func lastField(s string) string {
	f := strings.Fields(s)
	return f[len(f)-1]
}
