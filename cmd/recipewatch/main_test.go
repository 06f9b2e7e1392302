package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recipewatch/internal/config"
	"recipewatch/internal/recipe"
	"recipewatch/internal/store"
	"recipewatch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, handler http.Handler, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	if handler == nil {
		handler = http.NotFoundHandler()
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("REDDIT_USER_AGENT", "")
	t.Setenv("RECIPEWATCH_NTFY_TOPIC", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	opts = append([]testsupport.ConfigOption{testsupport.WithFeedBaseURL(server.URL)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	t.Setenv("HOME", testsupport.BaseDir(cfg))

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\nstaging_dir = %q\n\n"+
			"[feed]\nbase_url = %q\nsubreddit = %q\nrequest_interval = 0\nmax_retries = 0\n\n"+
			"[ledger]\nbackend = %q\nfile_path = %q\n\n"+
			"[publisher]\nkind = %q\n\n[publisher.directory]\npath = %q\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.StagingDir,
		cfg.Feed.BaseURL,
		cfg.Feed.Subreddit,
		cfg.Ledger.Backend,
		cfg.Ledger.FilePath,
		cfg.Publisher.Kind,
		cfg.Publisher.Directory.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func openEnvStore(t *testing.T, env *cliTestEnv) *store.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, env.cfg)
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output %q", out)
	}
	if content := testsupport.ReadFile(t, target); !strings.Contains(content, "[publisher.ntfy]") {
		t.Fatalf("expected sample config content, got %q", content)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	env := setupCLITestEnv(t, nil)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	for _, fragment := range []string{"Configuration valid", "r/" + env.cfg.Feed.Subreddit, env.configPath} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in %q", fragment, out)
		}
	}
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	if err := os.WriteFile(env.configPath, []byte("[feed]\nsubredit = \"typo\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestRecipesCommands(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	st := openEnvStore(t, env)

	now := time.Now()
	testsupport.InsertRecipe(t, st, testsupport.NewRecipe("wk1", "alice", 12, now.AddDate(0, 0, -3).Unix(), recipe.Dinner))
	testsupport.InsertRecipe(t, st, testsupport.NewRecipe("wk2", "bob", 40, now.AddDate(0, 0, -4).Unix(), recipe.Lunch))
	testsupport.InsertRecipe(t, st, testsupport.NewRecipe("old1", "alice", 99, now.AddDate(0, 0, -20).Unix(), recipe.Breakfast))

	out, _, err := runCLI(t, []string{"recipes", "week"}, env.configPath)
	if err != nil {
		t.Fatalf("recipes week: %v", err)
	}
	if strings.Contains(out, "old1") {
		t.Fatalf("week listing should exclude old recipes, got %q", out)
	}
	first, second := strings.Index(out, "wk2"), strings.Index(out, "wk1")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected wk2 ranked above wk1, got %q", out)
	}

	out, _, err = runCLI(t, []string{"recipes", "author", "alice"}, env.configPath)
	if err != nil {
		t.Fatalf("recipes author: %v", err)
	}
	if !strings.Contains(out, "wk1") || !strings.Contains(out, "old1") || strings.Contains(out, "wk2") {
		t.Fatalf("unexpected author listing %q", out)
	}

	out, _, err = runCLI(t, []string{"recipes", "author", "nobody"}, env.configPath)
	if err != nil {
		t.Fatalf("recipes author nobody: %v", err)
	}
	if !strings.Contains(out, "No recipes found") {
		t.Fatalf("expected empty message, got %q", out)
	}

	out, _, err = runCLI(t, []string{"recipes", "show", "wk1"}, env.configPath)
	if err != nil {
		t.Fatalf("recipes show: %v", err)
	}
	if out != "Recipe wk1\nIngredients\n- 1 cup rice\nInstructions\n- cook it\n" {
		t.Fatalf("unexpected show output %q", out)
	}

	if _, _, err := runCLI(t, []string{"recipes", "show", "missing"}, env.configPath); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestLedgerImportAndStatus(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	legacy := filepath.Join(testsupport.BaseDir(env.cfg), "legacy_ids.txt")
	testsupport.WriteLines(t, legacy, "aaa", "bbb", "", "aaa")

	out, _, err := runCLI(t, []string{"ledger", "import", legacy}, env.configPath)
	if err != nil {
		t.Fatalf("ledger import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 new submission id(s)") {
		t.Fatalf("unexpected import output %q", out)
	}

	out, _, err = runCLI(t, []string{"ledger", "import", legacy}, env.configPath)
	if err != nil {
		t.Fatalf("second ledger import: %v", err)
	}
	if !strings.Contains(out, "Imported 0 new submission id(s)") {
		t.Fatalf("second import should add nothing, got %q", out)
	}

	out, _, err = runCLI(t, []string{"ledger", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("ledger status: %v", err)
	}
	for _, fragment := range []string{"Backend:     sqlite", "Submissions: 2", "Recipes:     0"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in %q", fragment, out)
		}
	}
}

func TestDigestCommand(t *testing.T) {
	env := setupCLITestEnv(t, nil, testsupport.WithPublisher(config.PublisherDirectory))
	st := openEnvStore(t, env)
	testsupport.InsertRecipe(t, st, testsupport.NewRecipe("wk1", "alice", 12, time.Now().AddDate(0, 0, -3).Unix(), recipe.Dinner))

	out, _, err := runCLI(t, []string{"digest", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("digest --dry-run: %v", err)
	}
	if !strings.Contains(out, "Recipes:     1") || strings.Contains(out, "Published:") {
		t.Fatalf("unexpected dry-run output %q", out)
	}
	entries, err := os.ReadDir(env.cfg.Publisher.Directory.Path)
	if err != nil {
		t.Fatalf("read outbox: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run must not publish, found %d files", len(entries))
	}

	out, _, err = runCLI(t, []string{"digest"}, env.configPath)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if !strings.Contains(out, "Published:   yes") {
		t.Fatalf("expected published digest, got %q", out)
	}
	entries, err = os.ReadDir(env.cfg.Publisher.Directory.Path)
	if err != nil {
		t.Fatalf("read outbox: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one published digest, found %d", len(entries))
	}
	content := testsupport.ReadFile(t, filepath.Join(env.cfg.Publisher.Directory.Path, entries[0].Name()))
	if !strings.Contains(content, "Recipe wk1 - /u/alice") {
		t.Fatalf("unexpected digest content %q", content)
	}
}

func TestCheckCommandSavesRecipes(t *testing.T) {
	env := setupCLITestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/by_id/t3_abc.json":
			_, _ = w.Write([]byte(`{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"abc","author":"alice","score":3,"created_utc":1700000000,"title":"Chili","selftext":"Ingredients\n1 can beans\nInstructions\nSimmer","permalink":"/r/recipes/comments/abc/chili/"}}]}}`))
		case "/comments/abc.json":
			_, _ = w.Write([]byte(`[
				{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"abc"}}]}},
				{"kind":"Listing","data":{"children":[
					{"kind":"t1","data":{"id":"c1","author":"bob","body":"looks great","link_id":"t3_abc","replies":""}}
				]}}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))

	out, _, err := runCLI(t, []string{"check", "abc"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "[abc]") || !strings.Contains(out, "- 1 can beans") {
		t.Fatalf("unexpected check output %q", out)
	}
	if strings.Contains(out, "Saved") {
		t.Fatalf("check without --save must not store, got %q", out)
	}

	out, _, err = runCLI(t, []string{"check", "abc", "--save"}, env.configPath)
	if err != nil {
		t.Fatalf("check --save: %v", err)
	}
	if !strings.Contains(out, "Saved 1 new recipe(s), 0 already stored") {
		t.Fatalf("unexpected save output %q", out)
	}

	out, _, err = runCLI(t, []string{"recipes", "show", "abc", "--full"}, env.configPath)
	if err != nil {
		t.Fatalf("recipes show: %v", err)
	}
	if !strings.Contains(out, "https://www.reddit.com/r/recipes/comments/abc/chili/") {
		t.Fatalf("expected stored permalink, got %q", out)
	}

	if _, _, err := runCLI(t, []string{"check", "missing"}, env.configPath); err == nil {
		t.Fatal("expected error for missing submission")
	}
}

func TestPreflightCommand(t *testing.T) {
	env := setupCLITestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/about.json") {
			_, _ = w.Write([]byte(`{"kind":"t5","data":{}}`))
			return
		}
		http.NotFound(w, r)
	}))

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err != nil {
		t.Fatalf("preflight: %v\n%s", err, out)
	}
	for _, fragment := range []string{"Reddit feed", "Data directory", "Daemon"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in %q", fragment, out)
		}
	}
}

func TestPreflightCommandReportsFeedFailure(t *testing.T) {
	env := setupCLITestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err == nil {
		t.Fatalf("expected preflight failure, got %q", out)
	}
	if !strings.Contains(out, "unavailable (403)") {
		t.Fatalf("expected feed detail, got %q", out)
	}
}

func TestLedgerImportMissingFile(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	missing := filepath.Join(testsupport.BaseDir(env.cfg), "absent.txt")
	if _, _, err := runCLI(t, []string{"ledger", "import", missing}, env.configPath); err == nil {
		t.Fatal("expected error for missing ledger file")
	}
}

func TestLogsCommandFiltersComponent(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	testsupport.WriteLines(t, filepath.Join(env.cfg.Paths.LogDir, "recipewatch.log"),
		"2026-10-12T10:00:00Z INFO poller: cycle started",
		"2026-10-12T10:00:01Z INFO digest: digest built",
		"2026-10-12T10:00:02Z INFO poller: cycle complete",
	)

	out, _, err := runCLI(t, []string{"logs", "--component", "poller", "-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if strings.Contains(out, "digest built") || strings.Contains(out, "cycle started") || !strings.Contains(out, "cycle complete") {
		t.Fatalf("unexpected logs output %q", out)
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	env := setupCLITestEnv(t, nil)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, fragment := range []string{"[feed]", "[paths]", env.cfg.Feed.Subreddit, env.cfg.Paths.DataDir} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in %q", fragment, out)
		}
	}
}
