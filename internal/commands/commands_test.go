package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Sample(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, dir, "dashboard", "--as-of", "2025-08-15")
	require.NoError(t, err, out)

	assert.Contains(t, out, "August 2025")
	assert.Contains(t, out, "₹90,000", "monthly income")
	assert.Contains(t, out, "₹32,550", "monthly expenses")
	assert.Contains(t, out, "₹57,450", "savings and balance")
	assert.Contains(t, out, "Website development project", "newest transaction is recent")
	assert.NotContains(t, out, "Monthly salary", "only the five newest are shown")
}

func TestDashboard_OtherMonth(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, dir, "dashboard", "--as-of", "2025-09-01")
	require.NoError(t, err, out)

	assert.Contains(t, out, "September 2025")
	assert.Regexp(t, `Monthly income\s+₹0\n`, out)
	assert.Contains(t, out, "₹57,450", "balance spans all months")
}

func TestDashboard_BadDate(t *testing.T) {
	dir := initSample(t)
	_, err := runMyFinances(t, dir, "dashboard", "--as-of", "15/08/2025")
	require.Error(t, err)
}

func TestTx_AddListRemove(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, dir, "tx", "add",
		"--kind", "expense",
		"--amount", "1,500",
		"--category", "Food",
		"--date", "2025-08-20",
		"--description", "Dinner out",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Added #8 expense -₹1,500 on 20 Aug 2025 (Food)")

	out, err = runMyFinances(t, dir, "dashboard", "--as-of", "2025-08-20")
	require.NoError(t, err, out)
	assert.Contains(t, out, "₹34,050")

	out, err = runMyFinances(t, dir, "tx", "list", "--search", "dinner")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Dinner out")
	assert.Contains(t, out, "Movie and dinner")
	assert.Contains(t, out, "N/A", "source defaults when omitted")
	assert.NotContains(t, out, "Monthly rent")

	out, err = runMyFinances(t, dir, "tx", "rm", "#8")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Deleted transaction #8")

	out, err = runMyFinances(t, dir, "tx", "list", "--search", "dinner out")
	require.NoError(t, err, out)
	assert.Contains(t, out, "No transactions found.")

	// IDs are never reused.
	out, err = runMyFinances(t, dir, "tx", "add", "--kind", "income", "--amount", "100",
		"--category", "Business", "--date", "2025-08-21")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Added #9")
}

func TestTx_ListByKind(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, dir, "tx", "list", "--kind", "income")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Monthly salary")
	assert.Contains(t, out, "+₹15,000")
	assert.NotContains(t, out, "Monthly rent")

	_, err = runMyFinances(t, dir, "tx", "list", "--kind", "transfer")
	require.Error(t, err)
}

func TestTx_AddRejected(t *testing.T) {
	dir := initSample(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "wrong category for kind",
			args: []string{"--kind", "income", "--amount", "10", "--category", "Food"},
			want: "Salary",
		},
		{
			name: "negative amount",
			args: []string{"--kind", "expense", "--amount", "-5", "--category", "Food"},
			want: "invalid amount",
		},
		{
			name: "unparseable amount",
			args: []string{"--kind", "expense", "--amount", "lots", "--category", "Food"},
			want: "invalid amount",
		},
		{
			name: "bad kind",
			args: []string{"--kind", "gift", "--amount", "5", "--category", "Food"},
			want: "invalid transaction kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runMyFinances(t, dir, append([]string{"tx", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, out, tt.want)
		})
	}

	out, err := runMyFinances(t, dir, "tx", "list")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "#8", "rejected adds leave no trace")
}

func TestTx_RemoveMissing(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, dir, "tx", "rm", "99")
	require.Error(t, err)
	assert.Contains(t, out, "transaction not found")

	_, err = runMyFinances(t, dir, "tx", "rm", "abc")
	require.Error(t, err)
}

func TestBudget_ListAndSet(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, dir, "budget", "list", "--as-of", "2025-08-15")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Bills")
	assert.Contains(t, out, "83.3%")
	assert.Contains(t, out, "warning")

	out, err = runMyFinances(t, dir, "budget", "set", "Food", "2000")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Set Food budget to ₹2,000")

	out, err = runMyFinances(t, dir, "report", "budgets", "--as-of", "2025-08-15")
	require.NoError(t, err, out)
	assert.Contains(t, out, "217.5% !", "overspend is shown uncapped")
}

func TestBudget_SetRejected(t *testing.T) {
	dir := initSample(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"Food", "abc"}, "invalid budget limit"},
		{[]string{"Food", "0"}, "invalid budget limit"},
		{[]string{"Gifts", "100"}, "unknown budget category"},
	}
	for _, tt := range tests {
		out, err := runMyFinances(t, dir, append([]string{"budget", "set"}, tt.args...)...)
		require.Error(t, err, "budget set %v", tt.args)
		assert.Contains(t, out, tt.want)
	}
}

func TestReport_Trend(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, dir, "report", "trend", "--as-of", "2025-08-31", "--months", "3")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Jun 25")
	assert.Contains(t, out, "Jul 25")
	assert.Contains(t, out, "Aug 25")
	assert.NotContains(t, out, "May 25")
	assert.Contains(t, out, "₹57,450")
}

func TestImport_PendingThenDuplicate(t *testing.T) {
	dir := initSample(t)

	csv := "date,description,amount,category\n" +
		"2025-08-21,Coffee beans,-450,Food\n" +
		"2025-08-22,Refund from store,\"1,200\",\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "stmt.csv"), []byte(csv), 0o644))

	out, err := runMyFinances(t, dir, "import")
	require.NoError(t, err, out)
	assert.Contains(t, out, "stmt.csv: 2 added, 0 already imported")

	processed := filepath.Join(dir, "import", "processed", "stmt.csv")
	_, err = os.Stat(processed)
	require.NoError(t, err, "statement should be moved to processed/")

	out, err = runMyFinances(t, dir, "import", processed)
	require.NoError(t, err, out)
	assert.Contains(t, out, "stmt.csv: 0 added, 2 already imported")

	out, err = runMyFinances(t, dir, "tx", "list", "--category", "Other Income")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Refund from store")

	out, err = runMyFinances(t, dir, "import")
	require.NoError(t, err, out)
	assert.Contains(t, out, "No statements waiting")
}

func TestImport_UnknownFormat(t *testing.T) {
	dir := initSample(t)
	out, err := runMyFinances(t, dir, "import", "--format", "ofx")
	require.Error(t, err)
	assert.Contains(t, out, "chase, generic")
}

func TestLog_RecordsActivity(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, dir, "log")
	require.NoError(t, err, out)
	assert.Contains(t, out, "No activity yet.")

	_, err = runMyFinances(t, dir, "tx", "rm", "3")
	require.NoError(t, err)
	_, err = runMyFinances(t, dir, "budget", "set", "Gifts", "10")
	require.Error(t, err)

	out, err = runMyFinances(t, dir, "log")
	require.NoError(t, err, out)
	assert.Contains(t, out, "delete_transaction")
	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "set_budget")
	assert.Contains(t, out, "error")

	out, err = runMyFinances(t, dir, "log", "--limit", "1")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "delete_transaction")
}

func TestDirFromEnvironment(t *testing.T) {
	dir := initSample(t)

	out, err := runMyFinances(t, t.TempDir(), "dashboard", "--as-of", "2025-08-15")
	require.NoError(t, err, out)
	assert.Contains(t, out, "₹0", "an empty directory opens as an empty session")

	cmd := exec.Command(binaryPath, "dashboard", "--as-of", "2025-08-15")
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "MYFINANCES_DIR="+dir, "MYFINANCES_ENV=")
	raw, err := cmd.CombinedOutput()
	require.NoError(t, err, string(raw))
	assert.Contains(t, string(raw), "₹90,000")
}
