package config

import (
	"fmt"
	"os"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// ORDER_PAYMENT_WINDOW is how long an unpaid order holds its reservation.
const ORDER_PAYMENT_WINDOW = 15 * time.Minute

// CHECKIN_EARLY_WINDOW is how long before the event start gates open.
const CHECKIN_EARLY_WINDOW = 2 * time.Hour

// EXPIRY_SWEEP_INTERVAL is how often the sweeper releases expired holds.
const EXPIRY_SWEEP_INTERVAL = 1 * time.Minute
