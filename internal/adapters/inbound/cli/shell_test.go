package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdidvp/storekraft/internal/adapters/inbound/cli"
	"github.com/abdidvp/storekraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runShell feeds input lines to the root command and returns its output.
func runShell(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	cmd.SetArgs([]string{"--data-dir", dir})
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func readInventory(t *testing.T, dir string) []domain.ProductRecord {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)
	var records []domain.ProductRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestShell_SeedsCatalogOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	out := runShell(t, dir, "1", "0")
	assert.Contains(t, out, "No inventory.json found")
	assert.Contains(t, out, "iPhone 15")
	assert.Contains(t, out, "Goodbye.")

	records := readInventory(t, dir)
	require.Len(t, records, 3)
	assert.Equal(t, "Python Ebook", records[2].Name)
}

func TestShell_FullSale(t *testing.T) {
	dir := t.TempDir()

	out := runShell(t, dir,
		"2", "Ana",    // new order
		"3", "1", "2", // add 2 x product 1
		"4",           // view cart
		"7",           // finish
		"8",           // history
		"0",
	)
	assert.Contains(t, out, "Order started for Ana")
	assert.Contains(t, out, "Added 2 item(s)")
	assert.Contains(t, out, "Cart of Ana")
	assert.Contains(t, out, "Order paid")
	assert.Contains(t, out, "Order History")
	assert.Contains(t, out, "$1800.00")

	assert.Equal(t, 8, *readInventory(t, dir)[0].Stock)

	data, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	var orders []domain.OrderRecord
	require.NoError(t, json.Unmarshal(data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, domain.StatusPaid, orders[0].Status)
	assert.Equal(t, 1800.0, orders[0].Total)
}

func TestShell_ReportsDomainErrors(t *testing.T) {
	dir := t.TempDir()

	out := runShell(t, dir,
		"3", // add without order
		"2", "Ana",
		"2", "Bruno",   // second order
		"3", "2", "99", // too many
		"3", "9", "1",  // bad product number
		"3", "abc",     // not a number
		"7",            // finish empty
		"9",            // unknown option
		"0",
	)
	assert.Contains(t, out, "no open order")
	assert.Contains(t, out, "already an open order for Ana")
	assert.Contains(t, out, "available 5, requested 99")
	assert.Contains(t, out, "invalid product number 9")
	assert.Contains(t, out, `"abc" is not a whole number`)
	assert.Contains(t, out, `unknown option "9"`)
}

func TestShell_RemoveAndCancel(t *testing.T) {
	dir := t.TempDir()

	out := runShell(t, dir,
		"2", "Ana",
		"3", "2", "3",
		"5", "1", "1", // remove one unit
		"5", "1", "5", // too many
		"6", "n",      // keep
		"6", "y",      // cancel
		"0",
	)
	assert.Contains(t, out, "Item removed")
	assert.Contains(t, out, "you only have 2 of Notebook Dell")
	assert.Contains(t, out, "Order kept.")
	assert.Contains(t, out, "Order canceled, stock restored")

	assert.Equal(t, 5, *readInventory(t, dir)[1].Stock)
	_, err := os.Stat(filepath.Join(dir, "orders.json"))
	assert.True(t, os.IsNotExist(err), "canceled orders are not recorded")
}

func TestShell_ExitCancelsOpenOrder(t *testing.T) {
	dir := t.TempDir()

	out := runShell(t, dir, "2", "Ana", "3", "3", "10")
	assert.Contains(t, out, "Open order for Ana canceled")
	assert.Equal(t, 1000, *readInventory(t, dir)[2].Stock)
}
