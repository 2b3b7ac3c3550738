package service

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"yulebook/internal/config"
)

const (
	referencePrefix = "XM"
	base36Alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewBookingReference builds a short shareable token: fixed prefix, the
// current time in base-36 milliseconds and four random base-36 characters.
// Uniqueness is probabilistic; the database enforces it with a UNIQUE
// constraint and creation retries on collision.
func NewBookingReference(now time.Time) string {
	timestamp := strconv.FormatInt(now.UnixMilli(), 36)

	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	suffix := make([]byte, 4)
	for i, b := range buf {
		suffix[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}

	return strings.ToUpper(fmt.Sprintf("%s-%s-%s", referencePrefix, timestamp, suffix))
}

// PaymentLink formats the computed total into the configured payment URL.
func PaymentLink(cfg config.PaymentConfig, amount float64) string {
	return fmt.Sprintf("%s/%.2f?h=%s", strings.TrimRight(cfg.BaseURL, "/"), amount, cfg.Hash)
}
