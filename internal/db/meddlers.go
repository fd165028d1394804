package db

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
	"github.com/shopspring/decimal"
)

func init() {
	meddler.Register("address", hexMeddler[common.Address]{parse: common.HexToAddress})
	meddler.Register("hash", hexMeddler[common.Hash]{parse: common.HexToHash})
	meddler.Register("decimal", DecimalMeddler{})
}

type hexValue interface {
	comparable
	Hex() string
}

// hexMeddler stores fixed size byte values as 0x-prefixed hex strings.
// Both T and *T fields are supported, a nil *T maps to NULL.
type hexMeddler[T hexValue] struct {
	parse func(string) T
}

func (h hexMeddler[T]) PreRead(fieldAddr any) (any, error) {
	return new(sql.NullString), nil
}

func (h hexMeddler[T]) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	switch ptr := fieldAddr.(type) {
	case *T:
		var zero T
		*ptr = zero
		if ns.Valid {
			*ptr = h.parse(ns.String)
		}
	case **T:
		*ptr = nil
		if ns.Valid {
			v := h.parse(ns.String)
			*ptr = &v
		}
	default:
		return fmt.Errorf("unsupported field type %T", fieldAddr)
	}

	return nil
}

func (h hexMeddler[T]) PreWrite(field any) (any, error) {
	switch v := field.(type) {
	case T:
		return v.Hex(), nil
	case *T:
		if v == nil {
			return nil, nil
		}
		return (*v).Hex(), nil
	default:
		return nil, fmt.Errorf("unsupported field type %T", field)
	}
}

// DecimalMeddler stores arbitrary precision integers as base 10 TEXT so they never pass through REAL.
// Both decimal.Decimal and *decimal.Decimal fields are supported, a nil pointer maps to NULL.
type DecimalMeddler struct{}

func (DecimalMeddler) PreRead(fieldAddr any) (any, error) {
	return new(sql.NullString), nil
}

func (DecimalMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	var (
		d   decimal.Decimal
		err error
	)
	if ns.Valid {
		if d, err = decimal.NewFromString(ns.String); err != nil {
			return fmt.Errorf("invalid decimal %q: %w", ns.String, err)
		}
	}

	switch ptr := fieldAddr.(type) {
	case *decimal.Decimal:
		*ptr = d
	case **decimal.Decimal:
		*ptr = nil
		if ns.Valid {
			*ptr = &d
		}
	default:
		return fmt.Errorf("expected *decimal.Decimal or **decimal.Decimal, got %T", fieldAddr)
	}

	return nil
}

func (DecimalMeddler) PreWrite(field any) (any, error) {
	switch v := field.(type) {
	case decimal.Decimal:
		return v.String(), nil
	case *decimal.Decimal:
		if v == nil {
			return nil, nil
		}
		return v.String(), nil
	default:
		return nil, fmt.Errorf("expected decimal.Decimal or *decimal.Decimal, got %T", field)
	}
}
