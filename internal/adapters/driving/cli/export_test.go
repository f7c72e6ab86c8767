package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCmd_Use(t *testing.T) {
	assert.Equal(t, "export [run-id]", exportCmd.Use)
}

func TestExportCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"export"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestExportCmd_CSVToStdout(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	id := seedRun(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"export", id})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "entity_id,name,contact,period,count_a,count_b,count_c")
	assert.Contains(t, buf.String(), "D101,SUNRISE MOTORS,555-0101,2023,10,20,30")
}

func TestExportCmd_XLSXRequiresOutput(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	id := seedRun(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"export", "--format", "xlsx", id})
	defer func() {
		rootCmd.SetArgs(nil)
		exportFormatFlag = "csv"
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires --output")
}

func TestExportCmd_XLSXToFile(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	id := seedRun(t)
	target := filepath.Join(t.TempDir(), "rows.xlsx")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"export", "--format", "xlsx", "--output", target, id})
	defer func() {
		rootCmd.SetArgs(nil)
		exportFormatFlag = "csv"
		exportOutputFlag = ""
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	require.NoError(t, err)
	defer wb.Close()

	cell, err := wb.GetCellValue("Rows", "A1")
	require.NoError(t, err)
	assert.Equal(t, "entity_id", cell)

	cell, err = wb.GetCellValue("Rows", "A2")
	require.NoError(t, err)
	assert.Equal(t, "D101", cell)
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	id := seedRun(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"export", "--format", "parquet", id})
	defer func() {
		rootCmd.SetArgs(nil)
		exportFormatFlag = "csv"
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExportCmd_RunNotFound(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"export", "missing-id"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
