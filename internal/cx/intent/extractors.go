package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Defaults applied when the text carries no extractable entity.
const (
	DefaultCustomerID = "cust_001"
	DefaultDays       = 30
)

var (
	customerIDRe = regexp.MustCompile(`cust_\d{3}`)
	daysRe       = regexp.MustCompile(`last\s+(\d+)\s+days`)
)

// CustomerID extracts a cust_NNN identifier, defaulting to cust_001.
func CustomerID(text string) string {
	if m := customerIDRe.FindString(strings.ToLower(text)); m != "" {
		return m
	}
	return DefaultCustomerID
}

// Days extracts the day window from a "last N days" phrase, defaulting to 30.
// The result is always a positive integer.
func Days(text string) int {
	m := daysRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return DefaultDays
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return DefaultDays
	}
	return n
}
