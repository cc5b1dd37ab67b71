package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/logger"
	"os"
)

const ToolName = "token"

// Prints a sealed bearer token for local testing:
//
//	AUTH_SEALING_KEY=... go run ./cmd/token -user 65f0c0ffee0000000000a001 -role client
func main() {
	userID := flag.String("user", "", "user id carried by the token")
	role := flag.String("role", string(auth.RoleClient), "client, manager or admin")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:   "info",
		Format:  logger.TEXT,
		Service: ToolName,
		Output:  os.Stderr,
	})

	if *userID == "" {
		log.Fatal("Missing -user flag")
	}
	parsedRole, err := auth.ParseRole(*role)
	if err != nil {
		log.Fatal("Invalid -role flag", "error", err)
	}

	key, err := base64.StdEncoding.DecodeString(os.Getenv(config.EnvAuthSealingKey))
	if err != nil {
		log.Fatal("AUTH_SEALING_KEY is not valid base64", "error", err)
	}
	tokens, err := auth.NewTokens(key)
	if err != nil {
		log.Fatal("Failed to initialize token sealer", "error", err)
	}

	token, err := tokens.Issue(auth.Principal{ID: *userID, Role: parsedRole})
	if err != nil {
		log.Fatal("Failed to issue token", "error", err)
	}
	fmt.Println(token)
}
