// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable; required ones abort startup when missing.
type Config struct {
	Env            string   // application environment (dev/test/prod)
	Port           string   // HTTP port to listen on
	DBUser         string   // database username
	DBPass         string   // database password (optional)
	DBHost         string   // database host address
	DBPort         string   // database port number
	DBName         string   // database name
	JWTSecret      string   // secret used to sign JWTs
	AccessTTLMin   int      // access token time-to-live in minutes
	RefreshTTLDays int      // refresh token time-to-live in days
	BcryptCost     int      // bcrypt cost for password hashing
	StaffRooms     []string // rooms permanently reserved for staff, never bookable
}

// The staff-room list used when STAFF_ROOMS is not set. Kept here as the one
// source of truth; everything that needs the list reads it from Config.
var defaultStaffRooms = []string{"CSE-103", "CSE-104", "CSE-203"}

// Load reads configuration from the environment. Missing required variables
// are fatal.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		StaffRooms:     staffRooms(),
	}
}

func staffRooms() []string {
	raw := os.Getenv("STAFF_ROOMS")
	if raw == "" {
		return defaultStaffRooms
	}
	var rooms []string
	for _, r := range strings.Split(raw, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rooms = append(rooms, r)
		}
	}
	if len(rooms) == 0 {
		return defaultStaffRooms
	}
	return rooms
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
