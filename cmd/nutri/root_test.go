package nutri

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutri-cli/internal/apitest"
	"github.com/saadjs/nutri-cli/internal/screen"
)

// resetFlags puts every flag back to its default; cobra keeps parsed values
// between Execute calls on the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type cli struct {
	t     *testing.T
	state string
	api   string
	stdin string
}

func newCLI(t *testing.T, apiURL string) *cli {
	t.Helper()
	for _, k := range []string{"NUTRI_API_URL", "NUTRI_TIMEOUT", "NUTRI_LOG_LEVEL", "NUTRI_STATE", "NUTRI_THEME"} {
		t.Setenv(k, "")
	}
	return &cli{t: t, state: filepath.Join(t.TempDir(), "nutri.db"), api: apiURL}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(c.stdin))
	base := []string{"--state", c.state, "--env-file", filepath.Join(c.t.TempDir(), "none.env")}
	if c.api != "" {
		base = append(base, "--api", c.api)
	}
	rootCmd.SetArgs(append(base, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func (c *cli) must(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "nutri %s\n%s", strings.Join(args, " "), out)
	return out
}

func TestRootHelp(t *testing.T) {
	c := newCLI(t, "")
	out, err := c.run("--help")
	require.NoError(t, err)
	assert.Contains(t, out, "nutri")
	assert.Contains(t, out, "recipe")
}

func TestInitCommandIdempotent(t *testing.T) {
	c := newCLI(t, "")
	for i := 0; i < 2; i++ {
		out := c.must("init")
		assert.Contains(t, out, "Initialized nutri state at "+c.state)
	}
}

func TestThemePreference(t *testing.T) {
	c := newCLI(t, "")
	assert.Equal(t, "light\n", c.must("theme"))
	assert.Contains(t, c.must("theme", "toggle"), "dark")
	assert.Equal(t, "dark\n", c.must("theme"))
	c.must("theme", "LIGHT")
	assert.Equal(t, "light\n", c.must("theme"))

	_, err := c.run("theme", "blue")
	assert.Error(t, err)
}

func TestThemeFallsBackToEnv(t *testing.T) {
	c := newCLI(t, "")
	t.Setenv("NUTRI_THEME", "dark")
	assert.Equal(t, "dark\n", c.must("theme"))
}

func TestRegisterReadsPasswordAndConfirmationFromStdin(t *testing.T) {
	srv := apitest.New(t)
	c := newCLI(t, srv.URL)

	c.stdin = "secret1\nsecret1\n"
	out := c.must("register", "--name", "Ana", "--email", "ana@example.com")
	assert.Contains(t, out, "Created account")

	c.stdin = "secret1\nother1\n"
	_, err := c.run("register", "--name", "Bia", "--email", "bia@example.com")
	require.EqualError(t, err, "passwords do not match")

	c.stdin = "secret1\n"
	_, err = c.run("register", "--name", "Cai", "--email", "cai@example.com")
	require.EqualError(t, err, "confirm password is required")

	c.stdin = "secret1\n"
	out = c.must("login", "--email", "ana@example.com")
	assert.Contains(t, out, "Logged in as Ana")
}

var listedItem = regexp.MustCompile(`\[( |x)\] (\d+) (.+)`)

// itemIDs maps item names to ids as printed by `shop` commands.
func itemIDs(out string) map[string]string {
	ids := map[string]string{}
	for _, m := range listedItem.FindAllStringSubmatch(out, -1) {
		ids[m[3]] = m[2]
	}
	return ids
}

func TestEndToEndFlow(t *testing.T) {
	srv := apitest.New(t)
	c := newCLI(t, srv.URL)

	out := c.must("register", "--name", "Ana", "--email", "ana@example.com", "--password", "secret1", "--confirm", "secret1")
	assert.Contains(t, out, "Created account")

	_, err := c.run("register", "--name", "Bia", "--email", "bia@example.com", "--password", "secret1", "--confirm", "other1")
	require.EqualError(t, err, "passwords do not match")

	c.stdin = "secret1\n"
	out = c.must("login", "--email", "ana@example.com")
	c.stdin = ""
	assert.Contains(t, out, "Logged in as Ana <ana@example.com>")

	out = c.must("auth", "status")
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "valid")

	out = c.must("dashboard")
	assert.Contains(t, out, "Olá, Ana!")
	assert.Contains(t, out, "No profile yet")

	_, err = c.run("ai", "plan")
	require.Error(t, err, "plans need a profile")

	c.must("profile", "set", "--age", "30", "--weight", "70", "--height", "170",
		"--gender", "female", "--activity", "moderately-active", "--goal", "maintain", "--diet", "vegan")
	out = c.must("profile", "show")
	assert.Contains(t, out, "Manter peso")
	assert.Contains(t, out, "Vegano")

	c.must("weight", "add", "69,5")
	out = c.must("weight", "history")
	assert.Contains(t, out, "70.0")
	assert.Contains(t, out, "69.5")
	assert.Contains(t, out, "-0.5 kg")

	out = c.must("ai", "plan", "--days", "7", "--day", "4")
	assert.True(t, strings.HasPrefix(out, "Quinta: "), out)
	assert.Contains(t, out, "Tip: Beba 2 litros de água por dia.")
	assert.NotContains(t, out, "**")

	out = c.must("ai", "day", "1")
	assert.True(t, strings.HasPrefix(out, "Segunda: "), out)
	_, err = c.run("ai", "day", "8")
	assert.Error(t, err)

	out = c.must("ai", "shopping")
	assert.Contains(t, out, `"Plano de 7 dia(s)"`)

	out = c.must("shop", "new", "Churrasco de Domingo", "Carvão", "Sal grosso")
	ids := itemIDs(out)
	require.Contains(t, ids, "Carvão")
	out = c.must("shop", "toggle", ids["Carvão"])
	assert.Equal(t, "[x] Carvão\n", out)

	out = c.must("shop", "list")
	assert.Less(t, strings.Index(out, "Churrasco de Domingo"), strings.Index(out, "Plano de 7 dia(s)"), "newest list first")
	assert.Contains(t, out, "[x] "+ids["Carvão"]+" Carvão")
	assert.Contains(t, out, "[ ] "+ids["Sal grosso"]+" Sal grosso")
	assert.Contains(t, out, "(1/2)")

	c.must("shop", "rm-item", ids["Sal grosso"])
	assert.NotContains(t, c.must("shop", "list"), "Sal grosso")

	out = c.must("recipe", "add", "--title", "Arroz", "--instructions", "**Cozinhe** bem.", "--category", "almoço",
		"--ingredient", "arroz:100:g:130", "--ingredient", "azeite:10:ml:88")
	assert.Contains(t, out, "218 kcal")
	out = c.must("recipe", "add", "--title", "Pudim", "--instructions", "Asse.", "--category", "doce")
	pudim := regexp.MustCompile(`Added recipe (\d+)`).FindStringSubmatch(out)
	require.Len(t, pudim, 2)

	c.must("recipe", "fav", pudim[1])
	out = c.must("recipe", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Pudim", "favourites first")
	assert.Contains(t, lines[1], "★")

	out = c.must("recipe", "list", "--category", "almoco")
	assert.NotContains(t, out, "Pudim")

	out = c.must("recipe", "show", pudim[1])
	assert.Contains(t, out, "★ Pudim")

	out = c.must("recipe", "calc", "--ingredient", "frango:200:g", "--ingredient", "batata:1:kg")
	assert.Contains(t, out, "330 kcal")
	assert.Contains(t, out, "770 kcal")
	assert.Contains(t, out, "Total: 1100 kcal")

	out = c.must("ai", "chef", "ovo, queijo", "--save")
	assert.Contains(t, out, "Omelete de ovo e queijo")
	assert.Contains(t, out, "1. Bata os ingredientes.")
	assert.Contains(t, out, "Saved as recipe")

	out = c.must("requests", "--limit", "5")
	assert.Contains(t, out, "/recipes/")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 6)

	_, err = c.run("admin", "users")
	assert.ErrorIs(t, err, screen.ErrNotAdmin)

	c.must("logout")
	assert.Contains(t, c.must("auth", "status"), "Not logged in")
}

func TestRevokedTokenClearsCredential(t *testing.T) {
	srv := apitest.New(t)
	srv.AddUser("ana@example.com", "secret1", "Ana", true)
	c := newCLI(t, srv.URL)

	c.must("login", "--email", "ana@example.com", "--password", "secret1")
	out := c.must("admin", "users")
	assert.Contains(t, out, "ana@example.com")

	srv.RevokeTokens()
	_, err := c.run("dashboard")
	require.ErrorIs(t, err, screen.ErrSessionExpired)

	assert.Contains(t, c.must("auth", "status"), "Not logged in")
	out = c.must("doctor")
	assert.Contains(t, out, "Credential: none")
	assert.Contains(t, out, "Reachable: yes (status 401)")
}

func TestDoctorReportsUnreachableBackend(t *testing.T) {
	c := newCLI(t, "http://127.0.0.1:1")
	out, err := c.run("--timeout", "2s", "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "Reachable: no")
	assert.Contains(t, out, "timeout 2s")
}

func TestParseIngredient(t *testing.T) {
	ing, err := parseIngredient("farinha de trigo:1,5:xícara")
	require.NoError(t, err)
	assert.Equal(t, "farinha de trigo", ing.Name)
	assert.Equal(t, 1.5, ing.Quantity)
	assert.Equal(t, "xícara", ing.Unit)

	ing, err = parseIngredient("ovo:2:und:140")
	require.NoError(t, err)
	assert.Equal(t, 140.0, ing.Calories)

	for _, bad := range []string{"ovo", "ovo:0:g", "ovo:2:", ":2:g", "ovo:2:g:x", "a:1:g:2:3", "ovo:NaN:g", "ovo:Inf:g", "ovo:2:g:NaN"} {
		_, err := parseIngredient(bad)
		assert.Error(t, err, bad)
	}
}
