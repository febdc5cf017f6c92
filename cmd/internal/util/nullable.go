package util

import (
	"database/sql"
)

// NullableString преобразует *string в sql.NullString.
// Пустая строка ("") также будет считаться NULL для базы данных.
func NullableString(s *string) sql.NullString {
	if s == nil || *s == "" { // Если указатель nil ИЛИ строка пустая
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Для строковых полей, если пустая строка не должна передаваться как валидная (а как NULL)
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
