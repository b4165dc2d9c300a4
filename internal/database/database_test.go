package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	dsn, err := normalizeDSN("shop:secret@tcp(127.0.0.1:3306)/storefront")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.True(t, strings.HasPrefix(dsn, "shop:secret@tcp(127.0.0.1:3306)/storefront"))

	_, err = normalizeDSN("not a dsn")
	assert.Error(t, err)
}

func TestSchemaOrdersParentsFirst(t *testing.T) {
	position := map[string]int{}
	for i, stmt := range schema {
		fields := strings.Fields(stmt)
		require.GreaterOrEqual(t, len(fields), 6)
		position[fields[5]] = i
	}

	refs := map[string][]string{
		"subcategories":       {"categories"},
		"products":            {"categories", "subcategories"},
		"product_images":      {"products"},
		"collection_products": {"collections", "products"},
		"orders":              {"users"},
		"order_items":         {"orders", "products"},
		"reviews":             {"products"},
	}
	for table, parents := range refs {
		for _, parent := range parents {
			assert.Less(t, position[parent], position[table], "%s must be created before %s", parent, table)
		}
	}
}
