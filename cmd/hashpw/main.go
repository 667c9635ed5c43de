package main

import (
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// ADMIN_PASSWORD_HASHに設定するbcryptハッシュを生成するユーティリティ。
//
//	go run ./cmd/hashpw -password 'secret'
func main() {
	password := flag.String("password", "", "password to hash")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), *cost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	log.Printf("ADMIN_PASSWORD_HASH=%s", string(hash))
}
