package service

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// column limits mirror the schema in migrations/goose_sql
const (
	maxCategoryName  = 10
	maxCenterName    = 20
	maxCenterAddress = 60
	maxCenterOwner   = 30
	maxAthleteName   = 50
	cpfLength        = 11
)

// checkText trims s and appends a FieldError when it is empty or longer than max runes.
func checkText(ferrs []FieldError, field, s string, max int) (string, []FieldError) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		ferrs = append(ferrs, FieldError{Field: field, Message: "must not be empty"})
	case utf8.RuneCountInString(s) > max:
		ferrs = append(ferrs, FieldError{Field: field, Message: "length must be <= " + strconv.Itoa(max)})
	}
	return s, ferrs
}

func isValidCPF(cpf string) bool {
	if len(cpf) != cpfLength {
		return false
	}
	for _, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normalizeSex(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func isValidSex(s string) bool {
	switch s {
	case "M", "F":
		return true
	default:
		return false
	}
}
