// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"landingpress/internal/cache"
	"landingpress/internal/database"
	"landingpress/internal/middleware"
	"landingpress/internal/models"
	"landingpress/internal/render"
	"landingpress/internal/session"
	"landingpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "landingpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "landingpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB             *sql.DB
	Valkey         *redis.Client
	Renderer       *render.Renderer
	Sessions       *session.Store
	PageCache      *cache.PageCache
	TenantStore    *store.TenantStore
	UserStore      *store.UserStore
	LandingStore   *store.LandingStore
	PolicyStore    *store.PolicyStore
	LeadStore      *store.LeadStore
	SequenceStore  *store.SequenceStore
	KnowledgeStore *store.KnowledgeStore
	MediaStore     *store.MediaStore
	Auth           *Auth
	Landing        *Landing
	Policies       *Policies
	CRM            *CRM
	Public         *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Handlers needing S3 or the extraction service are built
// per-test with fakes.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		DB:             db,
		Valkey:         vk,
		Renderer:       renderer,
		Sessions:       session.NewStore(vk, false),
		PageCache:      cache.NewPageCache(vk, 1*time.Minute),
		TenantStore:    store.NewTenantStore(db),
		UserStore:      store.NewUserStore(db),
		LandingStore:   store.NewLandingStore(db),
		PolicyStore:    store.NewPolicyStore(db),
		LeadStore:      store.NewLeadStore(db),
		SequenceStore:  store.NewSequenceStore(db),
		KnowledgeStore: store.NewKnowledgeStore(db),
		MediaStore:     store.NewMediaStore(db),
	}
	env.Auth = NewAuth(env.Sessions, env.UserStore)
	env.Landing = NewLanding(env.LandingStore, env.TenantStore, env.PageCache)
	env.Policies = NewPolicies(env.PolicyStore, env.TenantStore, env.PageCache)
	env.CRM = NewCRM(env.LeadStore, env.SequenceStore)
	env.Public = NewPublic(env.TenantStore, env.LandingStore, env.PolicyStore, env.LeadStore, renderer, env.PageCache)
	return env
}

// testTenant creates a throwaway tenant removed on cleanup. Dependent
// rows cascade with it.
func testTenant(t *testing.T, env *testEnv) *models.Tenant {
	t.Helper()

	slug := "test-" + uuid.NewString()[:8]
	tenant, err := env.TenantStore.Create(slug, "Test Tenant")
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM tenants WHERE id = $1", tenant.ID)
	})
	return tenant
}

// testSession returns session data for a tenant operator.
func testSession(tenantID uuid.UUID) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		TenantID:    tenantID,
		Email:       "op@example.com",
		DisplayName: "Test Operator",
		Role:        "admin",
		CreatedAt:   time.Now(),
	}
}

// withSession injects session data and a session cookie into a request.
// The cookie gives stateful handlers a stable per-client key.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "test-" + sess.UserID.String()})
	ctx := context.WithValue(r.Context(), middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
