package utils

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// numberRegex finds the first number in a string.
// It handles integers (1,079), decimals (119.00), and thousands separators.
var numberRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// firstNumber returns the first number-like pattern in s, or ok=false.
func firstNumber(s string) (float64, bool) {
	found := numberRegex.FindString(s)
	if found == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(found, ",", "")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.Printf("firstNumber: Failed to parse '%s' from original string '%s': %v", cleaned, s, err)
		return 0, false
	}
	return n, true
}

// ParsePrice cleans a listing price such as "$128,800" or "$9,999.50 (Negotiable)"
// and converts it to a float64. Prices quoted on request ("POA", "N.A.") give 0.
func ParsePrice(priceStr string) float64 {
	price, _ := firstNumber(priceStr)
	return price
}

// ParseMileage reads the kilometres from strings like "45,210 km (9.1k /yr)".
// ok is false when no figure is shown.
func ParseMileage(mileageStr string) (km int64, ok bool) {
	n, ok := firstNumber(mileageStr)
	if !ok {
		return 0, false
	}
	return int64(n), true
}
