package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		adminID := ensureUser(db, "admin@tracker.local", "Tracker Admin", string(hash), "Admin")
		editorID := ensureUser(db, "editor@tracker.local", "Edith Editor", string(hash), "NoAccess")
		viewerID := ensureUser(db, "viewer@tracker.local", "Vito Viewer", string(hash), "NoAccess")

		projectID := ensureProject(db, "Sample Project", "Seeded project for local development", adminID)

		ensureAssignment(db, adminID, projectID, "Admin")
		ensureAssignment(db, editorID, projectID, "Editor")
		ensureAssignment(db, viewerID, projectID, "Viewer")

		fmt.Println("Seed complete: login with admin@tracker.local / password")
	},
}

func ensureUser(db *gorm.DB, email, name, hash, defaultRole string) string {
	var id string
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Printf("user %s already exists\n", email)
		return id
	}

	id = uuid.NewString()
	err := db.Exec(
		"INSERT INTO users (id, email, name, password_hash, default_role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
		id, email, name, hash, defaultRole,
	).Error
	if err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Printf("seeded user %s\n", email)
	return id
}

func ensureProject(db *gorm.DB, name, description, ownerID string) string {
	var id string
	if err := db.Raw("SELECT id FROM projects WHERE name = ?", name).Row().Scan(&id); err == nil {
		fmt.Printf("project %q already exists\n", name)
		return id
	}

	id = uuid.NewString()
	err := db.Exec(
		"INSERT INTO projects (id, name, description, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
		id, name, description, ownerID,
	).Error
	if err != nil {
		log.Fatalf("failed to insert project %q: %v", name, err)
	}
	fmt.Printf("seeded project %q\n", name)
	return id
}

func ensureAssignment(db *gorm.DB, userID, projectID, role string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM role_assignments WHERE user_id = ? AND project_id = ?", userID, projectID).Row().Scan(&exists); err == nil {
		return
	}

	err := db.Exec(
		"INSERT INTO role_assignments (id, user_id, project_id, role, created_at) VALUES (?, ?, ?, ?, now())",
		uuid.NewString(), userID, projectID, role,
	).Error
	if err != nil {
		log.Fatalf("failed to assign role %s: %v", role, err)
	}
	fmt.Printf("assigned %s to %s on %s\n", role, userID, projectID)
}
