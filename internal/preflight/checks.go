package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sys/unix"

	"recipewatch/internal/analyzer"
	"recipewatch/internal/config"
)

// CheckFeed verifies that the subreddit's about endpoint answers. It uses a
// 10-second timeout and a single attempt.
func CheckFeed(ctx context.Context, cfg config.Feed) Result {
	const name = "Reddit feed"

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}
	if strings.TrimSpace(cfg.Subreddit) == "" {
		return Result{Name: name, Detail: "missing subreddit"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := resty.New().
		SetBaseURL(base).
		SetHeader("User-Agent", cfg.UserAgent).
		R().
		SetContext(checkCtx).
		Get("/r/" + cfg.Subreddit + "/about.json")
	if err != nil {
		return Result{Name: name, Detail: summarizeNetError(err)}
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "r/" + cfg.Subreddit + " reachable"}
	case http.StatusForbidden, http.StatusNotFound:
		return Result{Name: name, Detail: fmt.Sprintf("r/%s unavailable (%d)", cfg.Subreddit, resp.StatusCode())}
	case http.StatusTooManyRequests:
		return Result{Name: name, Detail: "rate limited (set a descriptive user_agent)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%d)", resp.StatusCode())}
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckReadableFile verifies that path is a regular file the process can read.
func CheckReadableFile(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckCatalog verifies that the title catalog loads and is non-empty. An
// empty path checks the built-in catalog.
func CheckCatalog(path string) Result {
	const name = "Title catalog"

	catalog, err := analyzer.LoadCatalog(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	source := path
	if source == "" {
		source = "built-in"
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d titles)", source, catalog.Len())}
}

// CheckNtfy verifies that the ntfy publisher has a server and topic.
func CheckNtfy(cfg config.Ntfy) Result {
	const name = "ntfy"

	if strings.TrimSpace(cfg.URL) == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return Result{Name: name, Detail: "missing topic"}
	}
	return Result{Name: name, Passed: true, Detail: strings.TrimRight(cfg.URL, "/") + "/" + cfg.Topic}
}

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (feed unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (feed unreachable)"
	}
	return err.Error()
}
