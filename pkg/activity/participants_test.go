package activity

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	user1    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	user2    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	contract = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
)

func addrPtr(a common.Address) *common.Address { return &a }

func TestParticipants(t *testing.T) {
	tests := []struct {
		name     string
		from     common.Address
		to       *common.Address
		contract common.Address
		want     []common.Address
	}{
		{
			name:     "sender recipient and contract",
			from:     user1,
			to:       addrPtr(user2),
			contract: contract,
			want:     []common.Address{user1, user2, contract},
		},
		{
			name:     "direct call to the emitting contract collapses",
			from:     user1,
			to:       addrPtr(contract),
			contract: contract,
			want:     []common.Address{user1, contract},
		},
		{
			name:     "contract creation has no recipient",
			from:     user1,
			to:       nil,
			contract: contract,
			want:     []common.Address{user1, contract},
		},
		{
			name:     "zero recipient dropped",
			from:     user1,
			to:       addrPtr(common.Address{}),
			contract: contract,
			want:     []common.Address{user1, contract},
		},
		{
			name:     "zero sender dropped",
			from:     common.Address{},
			to:       addrPtr(user2),
			contract: contract,
			want:     []common.Address{user2, contract},
		},
		{
			name:     "everything identical",
			from:     user1,
			to:       addrPtr(user1),
			contract: user1,
			want:     []common.Address{user1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Participants(tt.from, tt.to, tt.contract)
			require.Equal(t, tt.want, got)
			require.LessOrEqual(t, len(got), 3)
			require.NotContains(t, got, common.Address{})
			if tt.to != nil && tt.from != (common.Address{}) {
				require.Contains(t, got, tt.from)
			}
		})
	}
}

func TestEvent_Participants(t *testing.T) {
	ev := &Event{From: user1, To: addrPtr(user2), Contract: contract, TxHash: common.HexToHash("0x01"), LogIndex: 3}

	require.Equal(t, []common.Address{user1, user2, contract}, ev.Participants())
	require.Equal(t, EventKey{TxHash: common.HexToHash("0x01"), LogIndex: 3}, ev.Key())
}

func TestParseBlockTag(t *testing.T) {
	tests := []struct {
		input   string
		latest  bool
		number  uint64
		wantErr bool
	}{
		{input: "latest", latest: true},
		{input: " LATEST ", latest: true},
		{input: "0", number: 0},
		{input: "12345", number: 12345},
		{input: "0x10", number: 16},
		{input: "pending", wantErr: true},
		{input: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tag, err := ParseBlockTag(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.latest, tag.IsLatest())
			require.Equal(t, tt.number, tag.Uint64())
		})
	}

	require.Equal(t, "latest", LatestBlock().String())
	require.Equal(t, "42", BlockNumber(42).String())
}
