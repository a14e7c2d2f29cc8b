package cmd

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const listingsCSV = `name,url,price,contains_dock,dock_distance
Lake House,https://example.com/lake,250000,true,3
City Flat,https://example.com/city,180000,false,0
Bay Cottage,https://example.com/bay,320000,TRUE,9
`

// resetFlags clears bound variables and Changed state that persist across
// invocations of the shared rootCmd.
func resetFlags() {
	viewFilters, viewHide, viewOrder = nil, nil, nil
	viewSort, viewAsc, viewNoSort = "", false, false
	exportOutput = ""
	columnsMarkdown = false
	serveAddr, serveSource = "", ""
	cfgFile, debug, flagLogLevel, flagHTTPTimeoutSec = "", false, "", 0
	unmark := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	unmark(rootCmd.PersistentFlags())
	for _, c := range []*cobra.Command{tableCmd, exportCmd, serveCmd, columnsCmd} {
		unmark(c.Flags())
	}
}

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\noutput:\n%s", args, err, out)
	}
	return out
}

func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	logOut = &bytes.Buffer{}
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolate points HOME and the config file at a temp dir and writes the listings CSV.
func isolate(t *testing.T) (dir, csvPath, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	csvPath = filepath.Join(dir, "scrape.csv")
	if err := os.WriteFile(csvPath, []byte(listingsCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return dir, csvPath, filepath.Join(dir, "config.yaml")
}

func TestCLI_SummaryCountsDocks(t *testing.T) {
	_, csvPath, cfgPath := isolate(t)
	out := runCmd(t, "--config", cfgPath, "summary", csvPath)
	if !strings.Contains(out, "2 listings with a dock") {
		t.Fatalf("unexpected summary: %q", out)
	}
}

func TestCLI_SummaryWithoutDockColumn(t *testing.T) {
	dir, _, cfgPath := isolate(t)
	p := filepath.Join(dir, "plain.csv")
	if err := os.WriteFile(p, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := runCmd(t, "--config", cfgPath, "summary", p)
	if !strings.Contains(out, "No docks near you") {
		t.Fatalf("unexpected summary: %q", out)
	}
}

func TestCLI_SummaryMissingFileFails(t *testing.T) {
	dir, _, cfgPath := isolate(t)
	out, err := execCmd(t, "--config", cfgPath, "summary", filepath.Join(dir, "nope.csv"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(out, "Failed to load data") {
		t.Fatalf("expected failure summary, got %q", out)
	}
}

func TestCLI_SummaryFromURL(t *testing.T) {
	_, _, cfgPath := isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(listingsCSV))
	}))
	defer srv.Close()
	out := runCmd(t, "--config", cfgPath, "summary", srv.URL+"/scrape.csv")
	if !strings.Contains(out, "2 listings with a dock") {
		t.Fatalf("unexpected summary: %q", out)
	}
}

func TestCLI_TableFilterAndHide(t *testing.T) {
	_, csvPath, cfgPath := isolate(t)
	out := runCmd(t, "--config", cfgPath, "table", csvPath, "--filter", "name=lake", "--hide", "url")
	if !strings.Contains(out, "Lake House") {
		t.Fatalf("expected filtered row in output:\n%s", out)
	}
	if strings.Contains(out, "City Flat") || strings.Contains(out, "Bay Cottage") {
		t.Fatalf("filter not applied:\n%s", out)
	}
	if strings.Contains(out, "https://example.com/lake") {
		t.Fatalf("hidden column still shown:\n%s", out)
	}
	if !strings.Contains(out, "Showing 1 of 3 rows") {
		t.Fatalf("missing row count:\n%s", out)
	}
}

func TestCLI_TableRejectsBadOrder(t *testing.T) {
	_, csvPath, cfgPath := isolate(t)
	if _, err := execCmd(t, "--config", cfgPath, "table", csvPath, "--order", "0,1"); err == nil {
		t.Fatalf("expected error for partial --order")
	}
}

func TestCLI_ExportCSVUsesDisplayOrder(t *testing.T) {
	dir, csvPath, cfgPath := isolate(t)
	outPath := filepath.Join(dir, "out", "view.csv")
	out := runCmd(t, "--config", cfgPath, "export", csvPath, "-o", outPath,
		"--order", "3,0,1,2,4", "--hide", "4", "--sort", "price", "--asc")
	if !strings.Contains(out, "Wrote 3 rows") {
		t.Fatalf("unexpected output: %q", out)
	}
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got := strings.Join(recs[0], ","); got != "contains_dock,name,url,price" {
		t.Fatalf("header = %q", got)
	}
	if recs[1][1] != "City Flat" || recs[3][1] != "Bay Cottage" {
		t.Fatalf("rows not sorted by price ascending: %v", recs)
	}
}

func TestCLI_ExportRejectsUnknownExtension(t *testing.T) {
	dir, csvPath, cfgPath := isolate(t)
	if _, err := execCmd(t, "--config", cfgPath, "export", csvPath, "-o", filepath.Join(dir, "x.json")); err == nil {
		t.Fatalf("expected error for .json output")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	_, csvPath, cfgPath := isolate(t)
	runCmd(t, "--config", cfgPath, "config", "set", "source", csvPath)
	runCmd(t, "--config", cfgPath, "config", "set", "delimiter", ";")
	if _, err := execCmd(t, "--config", cfgPath, "config", "set", "encoding", "ebcdic"); err == nil {
		t.Fatalf("expected invalid encoding error")
	}
	out := runCmd(t, "--config", cfgPath, "config", "show")
	if !strings.Contains(out, "source: "+csvPath) || !strings.Contains(out, `delimiter: ";"`) {
		t.Fatalf("config not persisted:\n%s", out)
	}

	// Configured source is used when no argument is given.
	semi := strings.ReplaceAll(listingsCSV, ",", ";")
	if err := os.WriteFile(csvPath, []byte(semi), 0o644); err != nil {
		t.Fatal(err)
	}
	out = runCmd(t, "--config", cfgPath, "summary")
	if !strings.Contains(out, "2 listings with a dock") {
		t.Fatalf("summary with configured source: %q", out)
	}
}

func TestCLI_ColumnsMarkdown(t *testing.T) {
	_, csvPath, cfgPath := isolate(t)
	out := runCmd(t, "--config", cfgPath, "columns", csvPath, "--markdown")
	if !strings.Contains(out, "- [3] contains_dock: boolean") {
		t.Fatalf("unexpected profile:\n%s", out)
	}
	if !strings.Contains(out, "- [2] price: numeric") {
		t.Fatalf("price not numeric:\n%s", out)
	}
}
