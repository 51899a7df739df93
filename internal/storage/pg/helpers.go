package pg

import (
	"fmt"

	"github.com/DjordjeVuckovic/polybench/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const recordColumns = "name, category, price, stock, description, rating"

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func MapToRecord(row pgx.CollectableRow) (domain.Record, error) {
	var r domain.Record
	var price pgtype.Numeric

	if err := row.Scan(
		&r.Name,
		&r.Category,
		&price,
		&r.Stock,
		&r.Description,
		&r.Rating,
	); err != nil {
		return domain.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}
	r.Price = fromNumeric(price)

	return r, nil
}

func collectRecords(rows pgx.Rows) ([]domain.Record, error) {
	return pgx.CollectRows(rows, MapToRecord)
}
