// cmd/migrate/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/dangerclosesec/orgward/internal/config"
)

var (
	dbConnString string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string (defaults to env config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(statusCmd)
}

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "migrate manages the orgward database schema",
	Long:  `migrate applies the idempotent orgward schema: tenancy tables, membership constraints, and join-code columns.`,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the schema",
	Run: func(cmd *cobra.Command, args []string) {
		conn := connect()
		defer conn.Close(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, stmt := range schemaStatements {
			if verbose {
				fmt.Printf("applying: %.60s...\n", stmt)
			}
			if _, err := conn.Exec(ctx, stmt); err != nil {
				log.Fatalf("Failed to apply schema: %v", err)
			}
		}
		fmt.Printf("Applied %d statements\n", len(schemaStatements))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which orgward tables exist",
	Run: func(cmd *cobra.Command, args []string) {
		conn := connect()
		defer conn.Close(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		tables := []string{"users", "organizations", "sites", "members", "member_site_assignments", "invitations", "join_requests"}
		for _, table := range tables {
			var exists bool
			err := conn.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1)`,
				table,
			).Scan(&exists)
			if err != nil {
				log.Fatalf("Failed to check table %s: %v", table, err)
			}
			state := "missing"
			if exists {
				state = "ok"
			}
			fmt.Printf("%-26s %s\n", table, state)
		}
	},
}

func connect() *pgx.Conn {
	dsn := dbConnString
	if dsn == "" {
		dsn = config.Load().DSN()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return conn
}

// schemaStatements is idempotent end to end so it can run against a
// half-migrated database.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS citext`,

	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		email citext NOT NULL UNIQUE,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS organizations (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name text NOT NULL,
		created_by_id uuid NOT NULL REFERENCES users(id),
		join_code text,
		join_code_expires timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`ALTER TABLE organizations ADD COLUMN IF NOT EXISTS join_code text`,
	`ALTER TABLE organizations ADD COLUMN IF NOT EXISTS join_code_expires timestamptz`,

	`CREATE TABLE IF NOT EXISTS sites (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		name text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS members (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role text NOT NULL CHECK (role IN ('admin', 'editor', 'viewer')),
		site_id uuid REFERENCES sites(id) ON DELETE SET NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (organization_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS member_site_assignments (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		member_id uuid NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		site_id uuid NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
		created_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (member_id, site_id)
	)`,

	`CREATE TABLE IF NOT EXISTS invitations (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		email citext NOT NULL,
		role text NOT NULL CHECK (role IN ('admin', 'editor', 'viewer')),
		site_id uuid REFERENCES sites(id) ON DELETE SET NULL,
		status text NOT NULL DEFAULT 'pending',
		created_at timestamptz NOT NULL DEFAULT now(),
		expires_at timestamptz NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS join_requests (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message text,
		status text NOT NULL DEFAULT 'pending',
		created_at timestamptz NOT NULL DEFAULT now(),
		reviewed_by_id uuid REFERENCES users(id),
		reviewed_at timestamptz
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sites_org ON sites (organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_org ON invitations (organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_join_requests_org ON join_requests (organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_organizations_join_code ON organizations (join_code)`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
