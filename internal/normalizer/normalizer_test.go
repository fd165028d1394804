package normalizer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goran-ethernal/ChainActivity/internal/chainreader"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
	"github.com/stretchr/testify/require"
)

var (
	user1    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	user2    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	contract = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
)

func rawLog(topics []common.Hash, data []byte, to *common.Address, value int64, status uint64) *chainreader.RawLog {
	tx := types.NewTx(&types.LegacyTx{To: to, Value: big.NewInt(value), Gas: 90_000, GasPrice: big.NewInt(1)})

	return &chainreader.RawLog{
		Log: types.Log{
			Address:     contract,
			Topics:      topics,
			Data:        data,
			BlockNumber: 42,
			TxHash:      common.HexToHash("0xfeed"),
			Index:       7,
		},
		Tx:      tx,
		From:    user1,
		Receipt: &types.Receipt{Status: status, GasUsed: 21000},
		Header:  &types.Header{Number: big.NewInt(42), Time: 1_700_000_000},
	}
}

func uint256Data(t *testing.T, v *big.Int) []byte {
	t.Helper()

	typ, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)

	data, err := abi.Arguments{{Type: typ}}.Pack(v)
	require.NoError(t, err)
	return data
}

func TestNormalize_KnownEvent(t *testing.T) {
	table := activity.DefaultSignatureTable()
	amount, _ := new(big.Int).SetString("1000000000000000000000000", 10)

	raw := rawLog(
		[]common.Hash{transferTopic, common.BytesToHash(user1.Bytes()), common.BytesToHash(user2.Bytes())},
		uint256Data(t, amount),
		&contract, 0, types.ReceiptStatusSuccessful,
	)

	ev, err := Normalize(raw, table)
	require.NoError(t, err)

	require.Equal(t, "Transfer", ev.Name)
	require.Equal(t, transferTopic, ev.Signature)
	require.Equal(t, activity.Transfer{From: user1, To: user2, Value: amount}, ev.Payload)
	require.Equal(t, uint64(42), ev.BlockNumber)
	require.Equal(t, uint(7), ev.LogIndex)
	require.Equal(t, contract, ev.Contract)
	require.Equal(t, user1, ev.From)
	require.Equal(t, &contract, ev.To)
	require.Equal(t, activity.StatusSuccess, ev.Status)
	require.Equal(t, int64(21000), ev.GasUsed.Int64())
	require.Equal(t, uint64(1_700_000_000), ev.Timestamp)
	require.Equal(t, []common.Address{user1, contract}, ev.Participants())
}

func TestNormalize_UnknownSignature(t *testing.T) {
	signature := common.HexToHash("0x1234")
	raw := rawLog([]common.Hash{signature}, nil, &user2, 5, types.ReceiptStatusFailed)

	ev, err := Normalize(raw, activity.DefaultSignatureTable())
	require.NoError(t, err)

	require.Equal(t, activity.UnknownEventName, ev.Name)
	require.False(t, ev.IsKnown())
	require.Equal(t, activity.Unknown{Signature: signature}, ev.Payload)
	require.Equal(t, activity.StatusFailure, ev.Status)
	require.Equal(t, int64(5), ev.Value.Int64())
	require.Equal(t, []common.Address{user1, user2, contract}, ev.Participants())
}

func TestNormalize_NoTopics(t *testing.T) {
	raw := rawLog(nil, []byte{0x01}, nil, 0, types.ReceiptStatusSuccessful)

	ev, err := Normalize(raw, activity.DefaultSignatureTable())
	require.NoError(t, err)

	require.Equal(t, activity.UnknownEventName, ev.Name)
	require.Equal(t, common.Hash{}, ev.Signature)
	require.Equal(t, activity.Unknown{}, ev.Payload)
	require.Nil(t, ev.To)
	require.Equal(t, []common.Address{user1, contract}, ev.Participants())
}

func TestNormalize_UndecodableKnownSignature(t *testing.T) {
	// ERC-721 transfer shares the ERC-20 signature but indexes the token id
	raw := rawLog(
		[]common.Hash{
			transferTopic,
			common.BytesToHash(user1.Bytes()),
			common.BytesToHash(user2.Bytes()),
			common.BigToHash(big.NewInt(1)),
		},
		nil, &contract, 0, types.ReceiptStatusSuccessful,
	)

	ev, err := Normalize(raw, activity.DefaultSignatureTable())
	require.NoError(t, err)

	require.Equal(t, "Transfer", ev.Name)
	require.True(t, ev.IsKnown())
	require.Equal(t, transferTopic, ev.Signature)
	require.Len(t, ev.Topics, 4)

	payload, ok := ev.Payload.(activity.Undecoded)
	require.True(t, ok, "payload %T", ev.Payload)
	require.Equal(t, transferTopic, payload.Signature)
	require.Contains(t, payload.Reason, activity.ErrDecode.Error())
	require.Equal(t, common.Address{}, payload.Subject())
	require.Equal(t, []common.Address{user1, contract}, ev.Participants())
}

func TestNormalize_IncompleteContext(t *testing.T) {
	raw := rawLog(nil, nil, nil, 0, types.ReceiptStatusSuccessful)
	raw.Receipt = nil

	_, err := Normalize(raw, activity.DefaultSignatureTable())
	require.ErrorIs(t, err, ErrIncompleteContext)

	_, err = Normalize(nil, activity.DefaultSignatureTable())
	require.ErrorIs(t, err, ErrIncompleteContext)
}

func TestNormalize_DoesNotAliasLog(t *testing.T) {
	topics := []common.Hash{common.HexToHash("0x1234")}
	raw := rawLog(topics, []byte{0xaa}, nil, 0, types.ReceiptStatusSuccessful)

	ev, err := Normalize(raw, activity.DefaultSignatureTable())
	require.NoError(t, err)

	raw.Log.Topics[0] = common.HexToHash("0x9999")
	raw.Log.Data[0] = 0xbb
	require.Equal(t, common.HexToHash("0x1234"), ev.Topics[0])
	require.Equal(t, byte(0xaa), ev.Data[0])
}
