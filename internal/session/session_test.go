package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return tok
}

func TestFromToken_Claims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	tok := signedToken(t, jwt.MapClaims{
		"user_id": 42,
		"role":    "MANAGER",
		"exp":     exp.Unix(),
	})

	s, err := FromToken(tok)
	if err != nil {
		t.Fatalf("FromToken error: %v", err)
	}
	if s.UserID != "42" {
		t.Errorf("UserID = %q, want 42", s.UserID)
	}
	if s.Role != "MANAGER" {
		t.Errorf("Role = %q, want MANAGER", s.Role)
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", s.ExpiresAt, exp)
	}
}

func TestFromToken_SubjectWins(t *testing.T) {
	s, err := FromToken(signedToken(t, jwt.MapClaims{"sub": "u-7", "user_id": 1}))
	if err != nil {
		t.Fatalf("FromToken error: %v", err)
	}
	if s.UserID != "u-7" {
		t.Errorf("UserID = %q, want u-7", s.UserID)
	}
	if !s.ExpiresAt.IsZero() {
		t.Errorf("ExpiresAt = %v, want zero", s.ExpiresAt)
	}
}

func TestFromToken_Empty(t *testing.T) {
	s, err := FromToken("")
	if err != nil {
		t.Fatalf("FromToken error: %v", err)
	}
	if s.IsAuthenticated(time.Now()) {
		t.Error("anonymous session reported authenticated")
	}
}

func TestFromToken_Malformed(t *testing.T) {
	if _, err := FromToken("not.a.jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestSession_Authorization(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		name string
		s    *Session
		want string
	}{
		{"Nil", nil, ""},
		{"NoToken", &Session{}, ""},
		{"NoExpiry", &Session{Token: "abc"}, "Bearer abc"},
		{"Valid", &Session{Token: "abc", ExpiresAt: now.Add(time.Minute)}, "Bearer abc"},
		{"Expired", &Session{Token: "abc", ExpiresAt: now}, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.Authorization(now); got != tc.want {
				t.Errorf("Authorization() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "profiles.toml"))

	p, err := store.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(p.Profiles) != 0 {
		t.Fatalf("expected no profiles, got %v", p.Profiles)
	}

	p.Active = "prod"
	p.Profiles["prod"] = Profile{URL: "https://cafe.example.com/api", NATSURL: "nats://events:4222"}
	p.Profiles["local"] = Profile{URL: "http://localhost:8080/api"}
	if err := store.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	active, ok := got.ActiveProfile()
	if !ok || active.URL != "https://cafe.example.com/api" || active.NATSURL != "nats://events:4222" {
		t.Errorf("ActiveProfile = %+v, %v", active, ok)
	}
	if len(got.Profiles) != 2 {
		t.Errorf("profiles = %d, want 2", len(got.Profiles))
	}
}

func TestStore_SetTokenCreatesDefault(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "profiles.toml"))
	if err := store.SetToken("http://localhost:8080/api", "tok-1"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	p, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	prof, ok := p.ActiveProfile()
	if !ok || p.Active != "default" {
		t.Fatalf("active = %q, ok = %v", p.Active, ok)
	}
	if prof.Token != "tok-1" || prof.URL != "http://localhost:8080/api" {
		t.Errorf("profile = %+v", prof)
	}

	// Logging out clears the token but keeps the URL.
	if err := store.Update("default", func(p *Profile) { p.Token = "" }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	p, _ = store.Load()
	if p.Profiles["default"].Token != "" || p.Profiles["default"].URL == "" {
		t.Errorf("after logout: %+v", p.Profiles["default"])
	}

	if err := store.Update("missing", func(*Profile) {}); err == nil {
		t.Error("expected error updating a missing profile")
	}
}
