package service

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 200
)

var zipPattern = regexp.MustCompile(`^\d{3}\s?\d{2}$`)

// NormalizeEmail trim 並轉小寫, 格式不符回傳 false
func NormalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		return "", false
	}
	return email, true
}

func ValidPasswordLength(password string) bool {
	n := utf8.RuneCountInString(password)
	return n >= minPasswordLen && n <= maxPasswordLen
}

func ValidZip(zip string) bool {
	return zipPattern.MatchString(strings.TrimSpace(zip))
}

// ParseQuantity 購物車數量必須是 1..100 的整數
func ParseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperr.Invalid("quantity", "quantity must be an integer")
	}
	if err := validateQuantity(qty); err != nil {
		return 0, err
	}
	return qty, nil
}

func validateQuantity(qty int) error {
	if qty < constants.MinCartQuantity || qty > constants.MaxCartQuantity {
		return apperr.Invalid("quantity", "quantity must be between 1 and 100")
	}
	return nil
}

// ParsePage 空字串視為第一頁
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.DefaultPage, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apperr.Invalid("page", "page must be a positive integer")
	}
	return page, nil
}

// ParseItemsPerPage 無法解析時用預設值, 其餘夾在 [1, 20]
func ParseItemsPerPage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return constants.DefaultItemsPerPage
	}
	return ClampItemsPerPage(n)
}

func ClampItemsPerPage(n int) int {
	switch {
	case n < 1:
		return 1
	case n > constants.MaxItemsPerPage:
		return constants.MaxItemsPerPage
	default:
		return n
	}
}
