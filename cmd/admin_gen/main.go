package main

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// admin_gen seeds the first admin account. Run it once against a fresh
// database; it prints the generated password exactly once.
func main() {
	name := flag.String("name", "Administrator", "display name for the admin account")
	email := flag.String("email", "admin@praxis.local", "email for the admin account")
	flag.Parse()

	_ = godotenv.Load()

	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("generate password: %v", err)
	}
	adminPassword := hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	id := uuid.NewString()
	_, err = db.Exec(
		`INSERT INTO users (id, name, email, password_hash, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 'admin', 'active', NOW(), NOW())`,
		id, *name, *email, string(hash),
	)
	if err != nil {
		log.Fatalf("insert admin: %v", err)
	}

	fmt.Println("Admin account created")
	fmt.Println("  id:      ", id)
	fmt.Println("  email:   ", *email)
	fmt.Println("  password:", adminPassword)
}
