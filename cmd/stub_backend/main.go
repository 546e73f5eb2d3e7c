package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/raushankrgupta/harvesthub-seeder/stub"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	username := os.Getenv("HARVESTHUB_USERNAME")
	if username == "" {
		username = "seller"
	}
	password := os.Getenv("HARVESTHUB_PASSWORD")
	if password == "" {
		password = "password"
	}

	server := stub.NewServer([]byte(os.Getenv("JWT_SECRET")))
	if err := server.AddUser(username, password); err != nil {
		log.Fatalf("Failed to create stub user: %v", err)
	}

	fmt.Printf("Stub backend starting on port %s...\n", port)
	fmt.Printf("Login with username %q against http://localhost:%s/api/auth/login\n", username, port)
	if err := http.ListenAndServe(":"+port, server.Handler()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
