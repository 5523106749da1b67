package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDriverDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "sqlite scheme",
			dsn:  "sqlite:///var/lib/todos.db",
			want: "/var/lib/todos.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		{
			name: "file uri with params",
			dsn:  "file:todos.db?mode=rwc",
			want: "file:todos.db?mode=rwc&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		{
			name: "bare path",
			dsn:  "todos.db",
			want: "todos.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		{
			name: "memory",
			dsn:  "sqlite://:memory:",
			want: ":memory:?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, driverDSN(tt.dsn, 5*time.Second))
		})
	}
}
