package store

import "github.com/shopspring/decimal"

// UserUpdate carries the fields of a partial user update. Nil fields are left untouched.
type UserUpdate struct {
	TotalReferrals               *int64
	TotalRewards                 *decimal.Decimal
	IsRegistered                 *bool
	AscensionBonusReferrals      *int64
	AscensionBonusSalesTotal     *decimal.Decimal
	AscensionBonusRewardsClaimed *decimal.Decimal
}

// ColumnKind tells a backend how to bind a column value.
type ColumnKind int

const (
	KindInteger ColumnKind = iota
	KindBool
	KindDecimal
)

// UserColumn maps one logical field of UserUpdate to its column.
type UserColumn struct {
	Column string
	Kind   ColumnKind
	value  func(u *UserUpdate) (any, bool)
}

// UserColumns is the mapping shared by every backend, in statement order.
var UserColumns = []UserColumn{
	{Column: "total_referrals", Kind: KindInteger, value: func(u *UserUpdate) (any, bool) {
		return deref(u.TotalReferrals)
	}},
	{Column: "total_rewards", Kind: KindDecimal, value: func(u *UserUpdate) (any, bool) {
		return decimalString(u.TotalRewards)
	}},
	{Column: "is_registered", Kind: KindBool, value: func(u *UserUpdate) (any, bool) {
		return deref(u.IsRegistered)
	}},
	{Column: "ascension_bonus_referrals", Kind: KindInteger, value: func(u *UserUpdate) (any, bool) {
		return deref(u.AscensionBonusReferrals)
	}},
	{Column: "ascension_bonus_sales_total", Kind: KindDecimal, value: func(u *UserUpdate) (any, bool) {
		return decimalString(u.AscensionBonusSalesTotal)
	}},
	{Column: "ascension_bonus_rewards_claimed", Kind: KindDecimal, value: func(u *UserUpdate) (any, bool) {
		return decimalString(u.AscensionBonusRewardsClaimed)
	}},
}

// Assignment is one column = value pair of an update statement. Decimal values are base 10 strings.
type Assignment struct {
	Column string
	Kind   ColumnKind
	Value  any
}

// Assignments lists the supplied fields in UserColumns order.
func (u UserUpdate) Assignments() []Assignment {
	var out []Assignment
	for _, c := range UserColumns {
		if v, ok := c.value(&u); ok {
			out = append(out, Assignment{Column: c.Column, Kind: c.Kind, Value: v})
		}
	}
	return out
}

// IsEmpty reports whether no field is set.
func (u UserUpdate) IsEmpty() bool {
	return len(u.Assignments()) == 0
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

func decimalString(d *decimal.Decimal) (any, bool) {
	if d == nil {
		return nil, false
	}
	return d.String(), true
}
