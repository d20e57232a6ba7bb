package utils

import (
	"github.com/google/uuid"
)

// ParseStringToUUID parses string, trả uuid.Nil khi invalid
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// IsValidUUID - Kiểm tra format UUID hợp lệ
func IsValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}
