package permissions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"umroh_travel_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestDefaultPolicy(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default policy: %v", err)
	}

	cases := []struct {
		role string
		perm Permission
		want bool
	}{
		{"admin", DocumentsGenerate, true},
		{"admin", LeadsConvert, true},
		{"sales", LeadsConvert, true},
		{"sales", CatalogWrite, false},
		{"operator", LeadsConvert, false},
		{"finance", AnalyticsRead, true},
		{"customer", LeadsRead, false},
		{"stranger", LeadsRead, false},
	}
	for _, tc := range cases {
		if got := p.Allows([]string{tc.role}, tc.perm); got != tc.want {
			t.Errorf("%s/%s: expected %v, got %v", tc.role, tc.perm, tc.want, got)
		}
	}
}

func TestParseRejectsUnknownPermission(t *testing.T) {
	_, err := Parse([]byte("roles:\n  sales:\n    - leads.delete\n"))
	if err == nil {
		t.Fatal("expected unknown permission to be rejected")
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	if _, err := Parse([]byte("roles: {}\n")); err == nil {
		t.Fatal("expected empty policy to be rejected")
	}
}

func TestEffectiveIsSortedUnion(t *testing.T) {
	p, err := Parse([]byte("roles:\n  a: [leads.write]\n  b: [leads.read, leads.write]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := p.Effective([]string{"a", "b"})
	if len(got) != 2 || got[0] != LeadsRead || got[1] != LeadsWrite {
		t.Fatalf("unexpected effective set %v", got)
	}
}

func TestRequireMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p, err := Default()
	if err != nil {
		t.Fatalf("default policy: %v", err)
	}

	run := func(roles ...string) int {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			c.Set(httpkit.ContextUserIDKey, uuid.New())
			c.Set(httpkit.ContextRolesKey, roles)
		}, p.Require(LeadsConvert), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Code
	}

	if code := run("sales"); code != http.StatusNoContent {
		t.Errorf("sales: expected 204, got %d", code)
	}
	if code := run("operator"); code != http.StatusForbidden {
		t.Errorf("operator: expected 403, got %d", code)
	}
}
