package store

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		page    Page
		wantErr bool
	}{
		{name: "first page", page: Page{Limit: 10}},
		{name: "offset", page: Page{Limit: 1, Offset: 99}},
		{name: "zero limit", page: Page{Limit: 0}, wantErr: true},
		{name: "negative limit", page: Page{Limit: -5}, wantErr: true},
		{name: "negative offset", page: Page{Limit: 10, Offset: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestWrap(t *testing.T) {
	require.NoError(t, Wrap("insert event", nil))

	cause := errors.New("disk full")
	err := Wrap("insert event", cause)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "insert event", pe.Op)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "store insert event: disk full", err.Error())

	// already wrapped errors keep their original operation
	require.Same(t, err, Wrap("upsert user", err))
}

func TestUserUpdate_Assignments(t *testing.T) {
	referrals := int64(3)
	registered := true
	claimed := decimal.NewFromInt(1_000)

	update := UserUpdate{
		AscensionBonusRewardsClaimed: &claimed,
		IsRegistered:                 &registered,
		TotalReferrals:               &referrals,
	}

	require.False(t, update.IsEmpty())
	require.Equal(t, []Assignment{
		{Column: "total_referrals", Kind: KindInteger, Value: int64(3)},
		{Column: "is_registered", Kind: KindBool, Value: true},
		{Column: "ascension_bonus_rewards_claimed", Kind: KindDecimal, Value: "1000"},
	}, update.Assignments())

	require.True(t, UserUpdate{}.IsEmpty())
}

func TestUserColumns_CoverEveryField(t *testing.T) {
	one := int64(1)
	yes := true
	d := decimal.NewFromInt(1)

	full := UserUpdate{
		TotalReferrals:               &one,
		TotalRewards:                 &d,
		IsRegistered:                 &yes,
		AscensionBonusReferrals:      &one,
		AscensionBonusSalesTotal:     &d,
		AscensionBonusRewardsClaimed: &d,
	}

	require.Len(t, full.Assignments(), len(UserColumns))
}

func TestNewEventRow(t *testing.T) {
	user := common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	referrer := common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	contract := common.HexToAddress("0x0000000000000000000000000000000000000aaa")

	ev := &activity.Event{
		BlockNumber: 7,
		TxHash:      common.HexToHash("0x01"),
		LogIndex:    2,
		Contract:    contract,
		From:        user,
		Value:       big.NewInt(5),
		GasUsed:     big.NewInt(50_000),
		Status:      activity.StatusSuccess,
		Timestamp:   1_700_000_000,
		Name:        "PackagePurchased",
		Payload: activity.PackagePurchased{
			User:      user,
			PackageID: big.NewInt(3),
			Amount:    big.NewInt(100),
			Referrer:  referrer,
		},
	}

	row, err := NewEventRow(ev, user)
	require.NoError(t, err)
	require.Equal(t, "PackagePurchased", row.EventType)
	require.Equal(t, user, row.UserAddress)
	require.Equal(t, "3", row.PackageID.String())
	require.Equal(t, "100", row.Amount.String())
	require.Equal(t, referrer, *row.ReferrerAddress)
	require.Nil(t, row.RecipientAddress)
	require.Equal(t, "5", row.Value.String())
	require.Equal(t, uint64(50_000), row.GasUsed)
	require.Equal(t, uint8(activity.StatusSuccess), row.Status)
	require.JSONEq(t,
		`{"user":"`+strings.ToLower(user.Hex())+`","package_id":3,"amount":100,"referrer":"`+strings.ToLower(referrer.Hex())+`"}`,
		row.EventData)

	// a zero referrer is stored as NULL
	ev.Payload = activity.Registered{User: user}
	row, err = NewEventRow(ev, user)
	require.NoError(t, err)
	require.Nil(t, row.ReferrerAddress)
	require.Nil(t, row.Amount)
}
