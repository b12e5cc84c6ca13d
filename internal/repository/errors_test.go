package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateEntry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"mysql 1062", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"wrapped mysql 1062", fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062}), true},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"other mysql error", &mysql.MySQLError{Number: 1452, Message: "FK violation"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateEntry(tt.err))
		})
	}
}
