package reader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsCSV = `name,category,price,stock,description,rating
Product 0,Electronics,199.99,10,A fast gadget,4.5
Product 1,Books,12.50,3,A long novel,3.9
Product 2,Toys,5.00,0,A small toy,2.0
`

func TestCSVReader_Read(t *testing.T) {
	rows, err := NewCSVReader(strings.NewReader(productsCSV)).Read()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "Product 0", rows[0]["name"])
	assert.Equal(t, "12.50", rows[1]["price"])
	assert.Equal(t, "A small toy", rows[2]["description"])
}

func TestCSVReader_ReadParallel(t *testing.T) {
	out, err := NewCSVReader(strings.NewReader(productsCSV)).ReadParallel(context.Background(), 3)
	require.NoError(t, err)

	var names []string
	for res := range out {
		require.NoError(t, res.Err)
		names = append(names, res.Record["name"])
	}
	assert.ElementsMatch(t, []string{"Product 0", "Product 1", "Product 2"}, names)
}

func TestCSVReader_ReadParallelShortRow(t *testing.T) {
	data := "name,category\nProduct 0\n"
	out, err := NewCSVReader(strings.NewReader(data)).ReadParallel(context.Background(), 1)
	require.NoError(t, err)

	var errs int
	for res := range out {
		if res.Err != nil {
			errs++
		}
	}
	assert.Equal(t, 1, errs)
}

func TestCSVReader_EmptyInput(t *testing.T) {
	_, err := NewCSVReader(strings.NewReader("")).Read()
	assert.Error(t, err)
}
