package nutri

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/api"
	"github.com/saadjs/nutri-cli/internal/app"
	"github.com/saadjs/nutri-cli/internal/db"
	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/screen"
	"github.com/saadjs/nutri-cli/internal/session"
	"github.com/saadjs/nutri-cli/internal/store"
)

// journalKeep is how many request journal rows survive each run.
const journalKeep = 500

// env is everything a command needs, built once per invocation.
type env struct {
	cfg     app.Config
	log     *slog.Logger
	db      *sql.DB
	kv      *store.KV
	journal *store.Journal
	sess    *session.Session
	client  *api.Client
	auth    *screen.Auth
}

func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig(envFile)
	if err != nil {
		return app.Config{}, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	}
	if timeoutArg != "" {
		d, err := app.ParseTimeout(strings.TrimSpace(timeoutArg))
		if err != nil {
			return app.Config{}, fmt.Errorf("--timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if statePath != "" {
		cfg.StatePath = statePath
	}
	if cfg.StatePath == "" {
		p, err := app.DefaultStatePath()
		if err != nil {
			return app.Config{}, err
		}
		cfg.StatePath = p
	}
	if verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

func withDB(run func(cfg app.Config, sqldb *sql.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := app.EnsureStateDir(cfg.StatePath); err != nil {
		return err
	}
	sqldb, err := db.OpenAndMigrate(cfg.StatePath)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	return run(cfg, sqldb)
}

// withEnv opens local state, wires the session into the API client and runs
// fn. An authentication failure clears the stored credential.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	return withDB(func(cfg app.Config, sqldb *sql.DB) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		e := &env{
			cfg:     cfg,
			log:     app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel),
			db:      sqldb,
			kv:      store.NewKV(sqldb),
			journal: store.NewJournal(sqldb),
		}
		if ephemeral {
			e.sess = session.New(session.NewMemoryStore())
		} else {
			e.sess = session.New(session.NewSQLiteStore(e.kv))
		}
		e.client = api.New(cfg.APIURL, e.sess, cfg.Timeout)
		e.client.Logger = e.log
		e.client.Observe = e.record
		e.auth = screen.NewAuth(e.client, e.sess, e.log)

		err := e.auth.Check(ctx, fn(ctx, e))
		if _, perr := e.journal.Prune(ctx, journalKeep); perr != nil {
			e.log.WarnContext(ctx, "journal: prune failed", "error", perr)
		}
		return err
	})
}

func (e *env) record(ctx context.Context, ex api.Exchange) {
	entry := store.JournalEntry{
		RequestID: ex.RequestID,
		Method:    ex.Method,
		Path:      ex.Path,
		Status:    ex.Status,
		Duration:  ex.Duration,
	}
	if ex.Err != nil {
		entry.Error = ex.Err.Error()
	}
	if err := e.journal.Record(ctx, entry); err != nil {
		e.log.WarnContext(ctx, "journal: record failed", "error", err)
	}
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parsePositiveFloat(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseIngredient reads "name:quantity:unit[:calories]".
func parseIngredient(v string) (model.Ingredient, error) {
	parts := strings.Split(v, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return model.Ingredient{}, fmt.Errorf("invalid ingredient %q (expected name:quantity:unit[:calories])", v)
	}
	qty, err := parsePositiveFloat("quantity", parts[1])
	if err != nil {
		return model.Ingredient{}, fmt.Errorf("ingredient %q: %w", parts[0], err)
	}
	ing := model.Ingredient{Name: strings.TrimSpace(parts[0]), Quantity: qty, Unit: strings.TrimSpace(parts[2])}
	if len(parts) == 4 {
		kcal, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(parts[3]), ",", "."), 64)
		if err != nil {
			return model.Ingredient{}, fmt.Errorf("ingredient %q: invalid calories %q", parts[0], parts[3])
		}
		ing.Calories = kcal
	}
	return ing, ing.Validate()
}

func parseIngredients(values []string) ([]model.Ingredient, error) {
	out := make([]model.Ingredient, 0, len(values))
	for _, v := range values {
		ing, err := parseIngredient(v)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, nil
}

// readSecret returns value or, when it is empty, the next line of in. A
// command reading several secrets must share one reader across the calls.
func readSecret(cmd *cobra.Command, in *bufio.Reader, value, name string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", name)
	line, err := in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return "", fmt.Errorf("%s is required", name)
	}
	return line, nil
}

func kcal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " kcal"
}
