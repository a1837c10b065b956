//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_map/internal/dataset"
	"hotel_map/internal/domain"
	mysqlrepo "hotel_map/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) (string, *sql.DB) {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotels",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotels?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return dsn, db
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertListAndLoad(t *testing.T) {
	dsn, db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	batch := []mysqlrepo.Row{
		{Seq: 0, Hotel: domain.HotelRecord{City: "Paris", Name: pstr("Hôtel A"), Rating: 8.2, Lat: 48.85, Lon: 2.35, URL: pstr("https://b.com/a")}},
		{Seq: 1, Hotel: domain.HotelRecord{City: "Paris", Name: pstr("Hôtel B"), Rating: 9.5, Lat: 48.86, Lon: 2.34}},
		{Seq: 2, Hotel: domain.HotelRecord{City: "Lyon", Rating: 7.0, Lat: 45.76, Lon: 4.83, Description: pstr("Desc")}},
	}
	if err := repo.UpsertHotels(ctx, batch); err != nil {
		t.Fatalf("UpsertHotels: %v", err)
	}
	// re-running the load must not duplicate rows
	if err := repo.UpsertHotels(ctx, batch); err != nil {
		t.Fatalf("UpsertHotels (again): %v", err)
	}
	// a row without rating, as a hand-edited table might contain
	if _, err := db.ExecContext(ctx,
		`INSERT INTO hotels (id, seq, city_name, hotel_latitude, hotel_longitude) VALUES ('x', 3, 'Paris', 48.8, 2.3)`); err != nil {
		t.Fatalf("insert unrated: %v", err)
	}

	n, err := repo.CountHotels(ctx)
	if err != nil || n != 4 {
		t.Fatalf("CountHotels = %d, %v", n, err)
	}

	raw, err := repo.ListHotels(ctx)
	if err != nil {
		t.Fatalf("ListHotels: %v", err)
	}
	if len(raw) != 4 || *raw[0].Name != "Hôtel A" || raw[3].Rating != nil {
		t.Fatalf("unexpected rows: %+v", raw)
	}

	// Same table through the dataset cache, as the viewer reads it.
	cache := dataset.NewCache(dataset.Resolver{
		OpenStore: func(ctx context.Context, dsn string) (dataset.HotelStore, error) { return mysqlrepo.Open(ctx, dsn) },
	}.Resolve)
	ds, err := cache.Get(ctx, "mysql://"+dsn)
	if err != nil {
		t.Fatalf("cache.Get: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("unrated row should be dropped, got %d rows", ds.Len())
	}
}
