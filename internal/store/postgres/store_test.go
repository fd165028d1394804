package postgres

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdate(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	referrals := int64(5)
	registered := true
	rewards := decimal.RequireFromString("1000000000000000000000000000000")

	query, args := buildUpdate(addr, store.UserUpdate{
		TotalReferrals: &referrals,
		TotalRewards:   &rewards,
		IsRegistered:   &registered,
	})

	require.Equal(t,
		"UPDATE users SET total_referrals = $1, total_rewards = $2::text::numeric, is_registered = $3, "+
			"updated_at = now() WHERE address = $4",
		query)
	require.Equal(t, []any{int64(5), "1000000000000000000000000000000", true, addr.Hex()}, args)
}

func TestBuildUpdate_OnlyTimestamp(t *testing.T) {
	addr := common.HexToAddress("0x0000000000000000000000000000000000000b0b")

	query, args := buildUpdate(addr, store.UserUpdate{})

	require.Equal(t, "UPDATE users SET updated_at = now() WHERE address = $1", query)
	require.Equal(t, []any{addr.Hex()}, args)
}

func TestOptionalConversions(t *testing.T) {
	require.Nil(t, optionalDecimal(nil))
	require.Nil(t, optionalAddress(nil))

	d := decimal.NewFromInt(42)
	require.Equal(t, "42", *optionalDecimal(&d))

	parsed, err := parseOptionalDecimal(optionalDecimal(&d))
	require.NoError(t, err)
	require.True(t, d.Equal(*parsed))

	none, err := parseOptionalDecimal(nil)
	require.NoError(t, err)
	require.Nil(t, none)

	bad := "1.2.3"
	_, err = parseOptionalDecimal(&bad)
	require.Error(t, err)

	addr := common.HexToAddress("0x0000000000000000000000000000000000000aaa")
	require.Equal(t, addr, *parseOptionalAddress(optionalAddress(&addr)))
}
