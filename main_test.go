package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(date, details, paidOut, paidIn, balance string) string {
	return fmt.Sprintf("%-8s%-30s%-13s%-13s%s", date, details, paidOut, paidIn, balance)
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bank-statement-parser v"+version+"\n", out)
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	text := strings.Join([]string{
		"J SMITH 12-34-56 12345678",
		"05 March 2018",
		row("Date", "Type Description", "Paid out", "Paid in", "Balance ()"),
		row("01 Mar", "BALANCE BROUGHT FORWARD", "", "", "1,025.00"),
		row("02 Mar", "DD ACME LTD", "25.00", "", "1,000.00"),
		row("05 Mar", "BALANCE CARRIED FORWARD", "", "", "1,000.00"),
	}, "\n")
	path := filepath.Join(dir, "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	out, err := runCommand(t, "parse", "--format", "csv", "--header=false", "--log-level", "error", path)
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Type,RecordType,Credit,Amount,Detail,Balance\n"+
			"2018-03-02,DD,direct_debit,false,25.00,ACME LTD,1000.00\n",
		out)

	outPath := filepath.Join(dir, "out.yaml")
	_, err = runCommand(t, "parse", "--format", "yaml", "--output", outPath, "--log-level", "error", path)
	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bank_statement:")
}

func TestParseCommand_Errors(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCommand(t, "parse", "--format", "xml", "--output", "", "statement.txt")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = runCommand(t, "parse", "--format", "yaml", "--output", "", "--log-level", "error", "statement.xls")
	assert.ErrorContains(t, err, "unsupported source")
}
