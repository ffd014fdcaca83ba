//go:build integration_pg
// +build integration_pg

package complaints

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestPGSource_Fetch_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	src, err := OpenPG(ctx, PGConfig{URL: dsn, MaxConns: 2, Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("OpenPG failed: %v", err)
	}
	defer src.Close()

	// The server may still be restarting right after the ready log line
	var pingErr error
	for i := 0; i < 20; i++ {
		if pingErr = src.Pool.Ping(ctx); pingErr == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if pingErr != nil {
		t.Fatalf("postgres not reachable: %v", pingErr)
	}

	_, err = src.Pool.Exec(ctx, `
		CREATE TABLE complaints (
			id text PRIMARY KEY,
			status text,
			urgency text,
			category text,
			submission_date timestamptz
		)`)
	if err != nil {
		t.Fatalf("failed to create complaints table: %v", err)
	}
	_, err = src.Pool.Exec(ctx, `
		INSERT INTO complaints VALUES
			('c1', 'Pending', 'High', 'Billing', '2024-03-13T10:15:00Z'),
			('c2', NULL, NULL, NULL, NULL)`)
	if err != nil {
		t.Fatalf("failed to seed complaints: %v", err)
	}

	records, err := src.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	byID := map[string]Record{}
	for _, r := range records {
		byID[r.ID] = r
	}

	c1 := byID["c1"]
	if c1.Urgency == nil || *c1.Urgency != "High" {
		t.Errorf("unexpected urgency: %v", c1.Urgency)
	}
	if got, ok := c1.SubmittedAt(); !ok || got.Unix() != 1710324900 {
		t.Errorf("unexpected submission date: %v", got)
	}

	c2 := byID["c2"]
	if c2.Status != "" || c2.Urgency != nil || c2.Category != nil {
		t.Errorf("Expected NULL columns to stay empty: %+v", c2)
	}
	if _, ok := c2.SubmittedAt(); ok {
		t.Error("Expected NULL submission date to be absent")
	}
}
