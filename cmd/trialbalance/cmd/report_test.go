// cmd/trialbalance/cmd/report_test.go
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trial-balance/internal/models"
)

const (
	journalCSV = `ACCOUNT,PERIOD,DEBIT,CREDIT
200,2023-01-03,10,0
100,2023-01-15,500,0
100,2023-02-10,0,200
999,2023-01-20,1,0
`
	accountsCSV = `ACCOUNT,LABEL
100,Cash
200,Bank
`
)

func writeData(t *testing.T, journal string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)

	j := filepath.Join(dir, "journal.csv")
	a := filepath.Join(dir, "accounts.csv")
	require.NoError(t, os.WriteFile(j, []byte(journal), 0o644))
	require.NoError(t, os.WriteFile(a, []byte(accountsCSV), 0o644))
	return j, a
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestReportCmd(t *testing.T) {
	j, a := writeData(t, journalCSV)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "csv",
			args: []string{"-f", "csv", "--start-period", "2023-01-01", "--end-period", "2023-12-31"},
			want: "Total Debit: 510 Total Credit: 200\n" +
				"Balance from account * to * from period 2023-01-01 to 2023-12-31\n\n" +
				"ACCOUNT,DESCRIPTION,DEBIT,CREDIT,BALANCE\n" +
				"200,Bank,10,0,10\n" +
				"100,Cash,500,200,300\n",
		},
		{
			name: "account range",
			args: []string{"-f", "csv", "--start-account", "150", "--start-period", "2023-01-01", "--end-period", "2023-01-31"},
			want: "Total Debit: 10 Total Credit: 0\n" +
				"Balance from account 150 to * from period 2023-01-01 to 2023-01-31\n\n" +
				"ACCOUNT,DESCRIPTION,DEBIT,CREDIT,BALANCE\n" +
				"200,Bank,10,0,10\n",
		},
		{
			name: "not ready prints nothing",
			args: []string{"-f", "csv", "--start-period", "2023-01-01"},
			want: "",
		},
		{
			name:    "bad format",
			args:    []string{"-f", "html", "--start-period", "2023-01-01", "--end-period", "2023-12-31"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"report", "--journal", j, "--accounts", a}, tt.args...)
			out, err := run(t, args...)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReportCmd_Table(t *testing.T) {
	j, a := writeData(t, journalCSV)

	out, err := run(t, "report", "--journal", j, "--accounts", a, "-f", "table", "--start-period", "2023-01-01", "--end-period", "2023-12-31")
	require.NoError(t, err)

	assert.Contains(t, out, "Total Debit: 510 Total Credit: 200")
	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "Bank")
	assert.NotContains(t, out, "999")
}

func TestReportCmd_Malformed(t *testing.T) {
	j, a := writeData(t, "ACCOUNT,PERIOD,DEBIT,CREDIT\n100,2023-01-15,abc,0\n")

	_, err := run(t, "report", "--journal", j, "--accounts", a, "-f", "csv", "--start-period", "2023-01-01", "--end-period", "2023-12-31")
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}
