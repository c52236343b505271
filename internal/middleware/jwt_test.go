package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"campus_tracker/internal/middleware"
	"campus_tracker/internal/models"
	"campus_tracker/internal/store/storetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(users middleware.UserFinder) *gin.Engine {
	r := gin.New()
	r.GET("/me", middleware.RequireAuth(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id"), "role": c.GetString("role")})
	})
	r.GET("/admin", middleware.RequireRoles(users, models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func seedUser(t *testing.T, users *storetest.Users, role string) *models.User {
	t.Helper()
	u := &models.User{Name: "T", Email: role + "@u.edu", Role: role, Status: models.StatusApproved}
	if err := users.Create(u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	users := storetest.NewUsers()
	u := seedUser(t, users, models.RoleStudent)
	r := newAuthRouter(users)

	token, err := middleware.GenerateToken(u.ID, u.Role)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := get(r, "/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	r := newAuthRouter(storetest.NewUsers())
	if w := get(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	r := newAuthRouter(storetest.NewUsers())
	if w := get(r, "/me", "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	users := storetest.NewUsers()
	u := seedUser(t, users, models.RoleStudent)
	r := newAuthRouter(users)

	token, _ := middleware.GenerateToken(u.ID, u.Role)
	if err := users.Delete(u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if w := get(r, "/me", token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 once the account is gone", w.Code)
	}
}

func TestRequireRolesChecksStoredRole(t *testing.T) {
	users := storetest.NewUsers()
	student := seedUser(t, users, models.RoleStudent)
	admin := seedUser(t, users, models.RoleAdmin)
	r := newAuthRouter(users)

	studentToken, _ := middleware.GenerateToken(student.ID, student.Role)
	adminToken, _ := middleware.GenerateToken(admin.ID, admin.Role)

	if w := get(r, "/admin", studentToken); w.Code != http.StatusForbidden {
		t.Errorf("student status = %d, want 403", w.Code)
	}
	if w := get(r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}

// A token minted with a stale role claim is only as strong as the stored
// role: demoting the user locks them out immediately.
func TestRequireRolesIgnoresStaleClaim(t *testing.T) {
	users := storetest.NewUsers()
	u := seedUser(t, users, models.RoleAdmin)
	r := newAuthRouter(users)

	token, _ := middleware.GenerateToken(u.ID, models.RoleAdmin)

	u.Role = models.RoleStudent
	if err := users.Save(u); err != nil {
		t.Fatalf("save: %v", err)
	}

	if w := get(r, "/admin", token); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 after demotion", w.Code)
	}
}

func TestMustHaveSecretInProduction(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "production")
	if err := middleware.MustHaveSecret(); err == nil {
		t.Error("expected error with no secret in production")
	}

	t.Setenv("JWT_SECRET", "explicit")
	if err := middleware.MustHaveSecret(); err != nil {
		t.Errorf("unexpected error with explicit secret: %v", err)
	}
}
