package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        int
	TwilioSID   string
	TwilioToken string
	TwilioFrom  string
	Admins      []string
	AdminLabel  string
	StatePath   string
	RedisURL    string
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var admins string

	fs := flag.NewFlagSet("secretary", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StatePath, "state", "", "Path of the state snapshot file")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for webhook dedup (optional)")

	// Bot identity
	fs.StringVar(&admins, "admins", "", "Comma-separated admin phone numbers")
	fs.StringVar(&cfg.AdminLabel, "admin-label", "", "How the admins are introduced in help text")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TwilioSID, "sid", "", "Twilio account SID (prefer env)")
	fs.StringVar(&cfg.TwilioToken, "token", "", "Twilio auth token (prefer env)")
	fs.StringVar(&cfg.TwilioFrom, "from", "", "Twilio sending number (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.StatePath == "" {
		cfg.StatePath = os.Getenv("STATE_PATH")
		if cfg.StatePath == "" {
			cfg.StatePath = "secretary-state.json"
		}
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if admins == "" {
		admins = os.Getenv("ADMIN_NUMBERS")
	}
	for _, num := range strings.Split(admins, ",") {
		if num = strings.TrimSpace(num); num != "" {
			cfg.Admins = append(cfg.Admins, num)
		}
	}
	if len(cfg.Admins) == 0 {
		return Config{}, errors.New("at least one admin number required (use -admins or ADMIN_NUMBERS env)")
	}

	if cfg.AdminLabel == "" {
		cfg.AdminLabel = os.Getenv("ADMIN_LABEL")
		if cfg.AdminLabel == "" {
			cfg.AdminLabel = "the admins"
		}
	}

	// Secrets - MUST be provided
	if cfg.TwilioSID == "" {
		cfg.TwilioSID = os.Getenv("TWILIO_SID")
	}
	if cfg.TwilioSID == "" {
		return Config{}, errors.New("TWILIO_SID required")
	}

	if cfg.TwilioToken == "" {
		cfg.TwilioToken = os.Getenv("TWILIO_TOKEN")
	}
	if cfg.TwilioToken == "" {
		return Config{}, errors.New("TWILIO_TOKEN required")
	}

	if cfg.TwilioFrom == "" {
		cfg.TwilioFrom = os.Getenv("TWILIO_FROM")
	}
	if cfg.TwilioFrom == "" {
		return Config{}, errors.New("TWILIO_FROM required")
	}

	return cfg, nil
}
