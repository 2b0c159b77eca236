package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
)

// decimalToNumeric copies the coefficient and exponent, so it cannot fail or
// produce an invalid numeric.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func optionalTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return timeToPgTimestamptz(*t)
}

func dateToPgDate(d domain.Date) pgtype.Date {
	return pgtype.Date{Time: d.UTCMidnight(), Valid: true}
}

func pgDateToDate(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.NewDate(d.Time.Year(), d.Time.Month(), d.Time.Day())
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
