package generator

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString_RoundTripsThroughPgx(t *testing.T) {
	tests := []struct {
		name     string
		password string
		database string
	}{
		{"space in password", "se cret", "demo"},
		{"empty password", "", "demo"},
		{"quote and backslash", `a'b\c`, "mi base"},
		{"keyword-looking password", "x dbname=otra", "tienda"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Connection{Host: "localhost", Port: 5432, User: "app", Password: tt.password}
			pc, err := pgx.ParseConfig(c.ConnString(tt.database))
			require.NoError(t, err)
			assert.Equal(t, tt.password, pc.Password)
			assert.Equal(t, tt.database, pc.Database)
			assert.Equal(t, "app", pc.User)
			assert.Equal(t, uint16(5432), pc.Port)
		})
	}
}

func TestQuoteConnValue(t *testing.T) {
	assert.Equal(t, "''", QuoteConnValue(""))
	assert.Equal(t, `'se cret'`, QuoteConnValue("se cret"))
	assert.Equal(t, `'a\'b\\c'`, QuoteConnValue(`a'b\c`))
}

func TestGenerate_ConnStringQuotesValues(t *testing.T) {
	code := generate(t, "demo", usuarios()).Code
	assert.Contains(t, code, `"host=%s port=%d user=%s password=%s dbname=%s"`)
	assert.Contains(t, code, "quoteConnValue(ConnConfig.Password)")
	assert.Contains(t, code, "quoteConnValue(ConnConfig.Database)")
	assert.Contains(t, code, `strings.NewReplacer("\\", "\\\\", "'", "\\'").Replace(v)`)
}
