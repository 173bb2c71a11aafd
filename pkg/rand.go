package pkg

import (
	"math/rand"
	"strings"
)

// addressCharset is the lowercase alphanumeric alphabet account addresses
// are drawn from.
const addressCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandString returns n random characters from the address alphabet.
func RandString(n int) string {
	var builder strings.Builder
	builder.Grow(n)

	for range n {
		builder.WriteByte(addressCharset[rand.Intn(len(addressCharset))]) //nolint:gosec
	}

	return builder.String()
}
