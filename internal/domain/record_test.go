package domain

import (
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		Name:        "Gaming Laptop 7",
		Category:    "Electronics",
		Price:       decimal.RequireFromString("499.99"),
		Stock:       12,
		Description: "Powerful gaming laptop",
		Rating:      4.5,
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Record)
		ok     bool
	}{
		{name: "valid", mutate: func(r *Record) {}, ok: true},
		{name: "zero price allowed", mutate: func(r *Record) { r.Price = decimal.Zero }, ok: true},
		{name: "negative price", mutate: func(r *Record) { r.Price = decimal.NewFromInt(-1) }},
		{name: "negative stock", mutate: func(r *Record) { r.Stock = -3 }},
		{name: "rating above five", mutate: func(r *Record) { r.Rating = 5.1 }},
		{name: "missing name", mutate: func(r *Record) { r.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := r.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var ve *apperr.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestPriceRoundTrip(t *testing.T) {
	for _, s := range []string{"10.00", "999.99", "123.45", "500.10"} {
		price := decimal.RequireFromString(s)
		r := Record{Price: price}

		back := PriceFromFloat(r.PriceFloat())
		assert.True(t, price.Equal(back), "price %s came back as %s", s, back)
	}
}

func TestCloneRecords(t *testing.T) {
	orig := []Record{validRecord(), validRecord()}
	clone := CloneRecords(orig)
	require.Len(t, clone, 2)

	clone[0].Name = "changed"
	assert.Equal(t, "Gaming Laptop 7", orig[0].Name)
	assert.Nil(t, CloneRecords(nil))
}
