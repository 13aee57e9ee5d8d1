// Command token mints an access token signed with the configured JWT secret,
// for local use against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/flowpilot-api/internal/config"
	"github.com/sangkips/flowpilot-api/pkg/utils"
)

func main() {
	email := flag.String("email", "dev@flowpilot.local", "Email claim")
	userID := flag.String("user", "", "User ID claim (random when empty)")
	roles := flag.String("roles", "admin", "Comma separated roles")
	permissions := flag.String("permissions", "manage-inventory", "Comma separated permissions")
	ttl := flag.Duration("ttl", 0, "Token lifetime (defaults to JWT_EXPIRY_HOURS)")
	flag.Parse()

	cfg := config.Load()

	id := uuid.New()
	if *userID != "" {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -user: %v\n", err)
			os.Exit(2)
		}
		id = parsed
	}

	expiry := cfg.JWT.ExpiryHours
	if *ttl > 0 {
		expiry = *ttl
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	token, err := utils.NewJWTManager(cfg.JWT.Secret, expiry).
		GenerateAccessToken(id, *email, splitList(*roles), splitList(*permissions))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
