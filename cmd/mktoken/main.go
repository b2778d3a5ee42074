package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"mood-chat/auth"
	"mood-chat/domain"
)

// mktoken mints an identity token for a user, signed with the server's
// secret. Meant for local development and test clients.
func main() {
	user := flag.String("user", "", "identity to mint a token for")
	lifetime := flag.Duration("lifetime", 24*time.Hour, "token validity")
	flag.Parse()

	if *user == "" {
		log.Fatal("expected -user")
	}

	_ = godotenv.Load()
	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		log.Fatal("TOKEN_SECRET is not set")
	}

	signed, err := auth.NewTokens([]byte(secret), *lifetime).Generate(domain.UserID(*user))
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(signed)
}
