package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/domain/ledger"
)

func TestSelectQuery_OrdersByInsertion(t *testing.T) {
	s := NewStore(nil, nil)

	tests := []struct {
		kind ledger.Kind
		want string
	}{
		{ledger.KindProduct, "SELECT id, product_name, product_code, unit, created_date FROM products ORDER BY seq"},
		{ledger.KindOpening, "SELECT id, product_id, quantity, rate, amount, date, created_date FROM opening_stock ORDER BY seq"},
		{ledger.KindInward, "SELECT id, product_id, quantity, rate, amount, date, created_date, supplier, remarks FROM inward_stock ORDER BY seq"},
		{ledger.KindOutward, "SELECT id, product_id, quantity, rate, amount, date, created_date, customer, remarks FROM outward_stock ORDER BY seq"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			sql, args, err := s.selectQuery(tt.kind).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
			assert.Empty(t, args)
		})
	}
}

func TestInsertQuery_InwardEntry(t *testing.T) {
	s := NewStore(nil, nil)
	created := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	e := ledger.InwardStockEntry{
		StockEntry: ledger.StockEntry{
			ID: "i1", ProductID: "p1",
			Quantity: decimal.NewFromInt(50), Rate: decimal.NewFromInt(6), Amount: decimal.NewFromInt(300),
			Date: "2024-01-05", CreatedDate: created,
		},
		Supplier: "Acme",
	}

	sql, args, err := s.insertQuery(ledger.KindInward, StructValues(e)).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO inward_stock (id,product_id,quantity,rate,amount,date,created_date,supplier,remarks) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)", sql)
	require.Len(t, args, 9)
	assert.Equal(t, "i1", args[0])
	assert.True(t, args[4].(decimal.Decimal).Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "Acme", args[7])
	assert.Equal(t, "", args[8])
}

func TestInsertQuery_Product(t *testing.T) {
	s := NewStore(nil, nil)
	p := ledger.Product{ID: "p1", ProductName: "Widget", ProductCode: "W-1", Unit: "nos"}

	sql, args, err := s.insertQuery(ledger.KindProduct, StructValues(p)).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO products (id,product_name,product_code,unit,created_date) VALUES ($1,$2,$3,$4,$5)", sql)
	assert.Equal(t, []any{"p1", "Widget", "W-1", "nos", p.CreatedDate}, args)
}

func TestColumns_CoverEveryCollection(t *testing.T) {
	for _, kind := range ledger.Kinds {
		assert.NotEmpty(t, columns[kind], kind)
	}
	assert.Len(t, columns[ledger.KindOpening], 7)
	assert.Equal(t, "supplier", columns[ledger.KindInward][7])
	assert.Equal(t, "customer", columns[ledger.KindOutward][7])
}

func TestSchema_HasNoForeignKeys(t *testing.T) {
	for _, stmt := range schemaStatements {
		assert.NotContains(t, strings.ToUpper(stmt), "REFERENCES")
	}
	for _, kind := range ledger.Kinds {
		assert.NotEmpty(t, tableNames[kind], kind)
	}
}
