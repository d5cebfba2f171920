/*-------------------------------------------------------------------------
 *
 * password.go
 *    Password hashing, verification, and generation
 *
 * Record stores provisioned by hand often carry legacy plain-text
 * passwords; verification accepts those with a constant-time compare
 * while new credentials are bcrypt hashed.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/auth/password.go
 *
 *-------------------------------------------------------------------------
 */

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordLetters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	passwordDigits  = "23456789"
	passwordSymbols = "!@#$%&*"
)

/* HashPassword hashes a password with bcrypt */
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}
	return string(hash), nil
}

/* VerifyPassword checks a provided password against the stored value.
 * Bcrypt hashes are compared with bcrypt; anything else is treated as
 * a legacy plain-text credential and compared in constant time. */
func VerifyPassword(stored, provided string) bool {
	if stored == "" || provided == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) == 1
}

/* GeneratePassword produces a random password with at least one digit
 * and one symbol. Length is clamped to a minimum of 8. */
func GeneratePassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	/* Guarantee one digit and one symbol, fill the rest with letters,
	 * then shuffle. */
	chars := make([]byte, 0, length)
	digit, err := randomChar(passwordDigits)
	if err != nil {
		return "", err
	}
	symbol, err := randomChar(passwordSymbols)
	if err != nil {
		return "", err
	}
	chars = append(chars, digit, symbol)

	for len(chars) < length {
		c, err := randomChar(passwordLetters + passwordDigits)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars), nil
}

func randomChar(charset string) (byte, error) {
	idx, err := randomIndex(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[idx], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random generation failed: %w", err)
	}
	return int(v.Int64()), nil
}
