package main

import (
	"flag"
	"fmt"
	"os"

	"rx-exchange/internal/pkg/config"
	"rx-exchange/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Mints a bearer token for local testing, signed with JWT_SECRET.
func main() {
	hospital := flag.String("hospital", "", "hospital id (uuid); random when empty")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	hospitalID := uuid.New()
	if *hospital != "" {
		if hospitalID, err = uuid.Parse(*hospital); err != nil {
			fmt.Fprintln(os.Stderr, "invalid hospital id:", err)
			os.Exit(1)
		}
	}

	token, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL).GenerateToken(hospitalID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign token:", err)
		os.Exit(1)
	}
	fmt.Printf("hospital_id=%s\nAuthorization: Bearer %s\n", hospitalID, token)
}
