// Package apitest runs an in-memory NutriAgent backend for tests.
//
// It implements the endpoints the client consumes with the same paths,
// status codes and {"detail": ...} error bodies, keeps all state in memory,
// and lets tests inject failures and inspect the requests it received.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/saadjs/nutri-cli/internal/model"
)

var signingKey = []byte("apitest-signing-key")

// Seen is one request as received by the server.
type Seen struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type failure struct {
	method string
	path   string
	status int
}

type account struct {
	user     model.User
	password string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	accounts map[int64]*account
	byEmail  map[string]int64
	tokens   map[string]int64
	profiles map[int64]model.Profile
	weights  map[int64][]model.WeightEntry
	recipes  map[int64]model.Recipe
	lists    map[int64]*model.ShoppingList
	owners   map[int64]int64 // shopping list id -> user id
	failures []failure
	seen     []Seen

	planCalls int
	planGate  chan struct{}
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		clock:    time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		accounts: map[int64]*account{},
		byEmail:  map[string]int64{},
		tokens:   map[string]int64{},
		profiles: map[int64]model.Profile{},
		weights:  map[int64][]model.WeightEntry{},
		recipes:  map[int64]model.Recipe{},
		lists:    map[int64]*model.ShoppingList{},
		owners:   map[int64]int64{},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.record, s.injectFailures)

	r.POST("/auth/login", s.login)
	r.POST("/users/", s.register)

	authed := r.Group("/", s.authenticate)
	authed.GET("/users/me", s.me)
	authed.GET("/admin/users", s.adminUsers)

	authed.GET("/profiles/me", s.getProfile)
	authed.PUT("/profiles/me", s.putProfile)
	authed.POST("/profiles/weight", s.addWeight)
	authed.GET("/profiles/weight/history", s.weightHistory)

	authed.GET("/recipes/", s.listRecipes)
	authed.POST("/recipes/", s.createRecipe)
	authed.GET("/recipes/:id", s.getRecipe)
	authed.PUT("/recipes/:id", s.updateRecipe)
	authed.DELETE("/recipes/:id", s.deleteRecipe)

	authed.GET("/shopping/", s.listShopping)
	authed.POST("/shopping/", s.createShopping)
	authed.DELETE("/shopping/:id", s.deleteShopping)
	authed.POST("/shopping/:id/items", s.addShoppingItem)
	authed.PATCH("/shopping/items/:id/toggle", s.toggleShoppingItem)
	authed.DELETE("/shopping/items/:id", s.deleteShoppingItem)

	authed.POST("/ai/generate-plan", s.generatePlan)
	authed.POST("/ai/recipe-by-ingredients", s.recipeByIngredients)
	authed.POST("/ai/calculate-calories", s.calculateCalories)
	authed.POST("/ai/plan-to-shopping-list", s.planToShoppingList)
	return r
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.seen = append(s.seen, Seen{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Authorization: c.GetHeader("Authorization"),
		RequestID:     c.GetHeader("X-Request-ID"),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFailures(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.failures {
		if f.method == c.Request.Method && f.path == c.Request.URL.Path {
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			c.AbortWithStatusJSON(f.status, gin.H{"detail": "injected failure"})
			return
		}
	}
}

func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	s.mu.Lock()
	uid, known := s.tokens[token]
	s.mu.Unlock()
	if !ok || !known {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}
	c.Set("uid", uid)
	c.Next()
}

func userID(c *gin.Context) int64 {
	return c.GetInt64("uid")
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (s *Server) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// AddUser creates an account directly, bypassing /users/.
func (s *Server) AddUser(email, password, fullName string, superuser bool) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, fullName, superuser)
}

func (s *Server) addUserLocked(email, password, fullName string, superuser bool) model.User {
	u := model.User{ID: s.id(), Email: email, FullName: fullName, IsSuperuser: superuser, IsActive: true}
	s.accounts[u.ID] = &account{user: u, password: password}
	s.byEmail[strings.ToLower(email)] = u.ID
	return u
}

// Token logs the user in server-side and returns a valid bearer token.
func (s *Server) Token(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(s.byEmail[strings.ToLower(email)])
}

func (s *Server) issueLocked(uid int64) string {
	acc := s.accounts[uid]
	now := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   acc.user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
	}).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	s.tokens[signed] = uid
	return signed
}

// FailNext makes the next request matching method and path fail with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status})
}

// Requests returns every request received so far.
func (s *Server) Requests() []Seen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Seen(nil), s.seen...)
}

// LastRequest returns the most recent request for path.
func (s *Server) LastRequest(path string) (Seen, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.seen) - 1; i >= 0; i-- {
		if s.seen[i].Path == path {
			return s.seen[i], true
		}
	}
	return Seen{}, false
}

// RevokeTokens invalidates every issued token, as an expiry would.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]int64{}
}
