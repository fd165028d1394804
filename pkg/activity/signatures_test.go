package activity

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func addressTopic(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

func packUints(t *testing.T, values ...*big.Int) []byte {
	t.Helper()

	uint256, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)

	args := make(abi.Arguments, len(values))
	vals := make([]any, len(values))
	for i, v := range values {
		args[i] = abi.Argument{Type: uint256}
		vals[i] = v
	}

	data, err := args.Pack(vals...)
	require.NoError(t, err)
	return data
}

func TestDefaultSignatureTable(t *testing.T) {
	table := DefaultSignatureTable()

	transferTopic := crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
	spec, ok := table.Lookup(transferTopic)
	require.True(t, ok)
	require.Equal(t, "Transfer", spec.Name)
	require.Equal(t, "Transfer(address,address,uint256)", spec.Signature)

	require.Equal(t, "UserRegistered", table.Name(crypto.Keccak256Hash([]byte("UserRegistered(address,address)"))))
	require.Equal(t, UnknownEventName, table.Name(common.HexToHash("0xdeadbeef")))

	names := make([]string, 0)
	for _, s := range table.Specs() {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{
		"Approval", "AscensionBonusClaimed", "AscensionBonusUnlocked", "PackagePurchased",
		"ReferralRewardPaid", "Transfer", "UserRegistered",
	}, names)
}

func TestEventSpec_Decode(t *testing.T) {
	table := DefaultSignatureTable()

	t.Run("transfer", func(t *testing.T) {
		spec, _ := table.Lookup(crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")))
		value, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

		payload, err := spec.Decode(
			[]common.Hash{spec.Topic, addressTopic(user1), addressTopic(user2)},
			packUints(t, value),
		)
		require.NoError(t, err)
		require.Equal(t, Transfer{From: user1, To: user2, Value: value}, payload)
		require.Equal(t, user1, payload.Subject())
	})

	t.Run("package purchased with indexed uint", func(t *testing.T) {
		spec, _ := table.Lookup(crypto.Keccak256Hash([]byte("PackagePurchased(address,uint256,uint256,address)")))

		address, err := abi.NewType("address", "", nil)
		require.NoError(t, err)
		uint256, err := abi.NewType("uint256", "", nil)
		require.NoError(t, err)
		data, err := abi.Arguments{{Type: uint256}, {Type: address}}.Pack(big.NewInt(500), user2)
		require.NoError(t, err)

		payload, err := spec.Decode(
			[]common.Hash{spec.Topic, addressTopic(user1), common.BigToHash(big.NewInt(3))},
			data,
		)
		require.NoError(t, err)

		purchase, ok := payload.(PackagePurchased)
		require.True(t, ok)
		require.Equal(t, user1, purchase.User)
		require.Equal(t, user2, purchase.Referrer)
		require.Equal(t, int64(3), purchase.PackageID.Int64())
		require.Equal(t, int64(500), purchase.Amount.Int64())
	})

	t.Run("registration without data", func(t *testing.T) {
		spec, _ := table.Lookup(crypto.Keccak256Hash([]byte("UserRegistered(address,address)")))

		payload, err := spec.Decode([]common.Hash{spec.Topic, addressTopic(user1), addressTopic(user2)}, nil)
		require.NoError(t, err)
		require.Equal(t, Registered{User: user1, Referrer: user2}, payload)
	})

	t.Run("topic count mismatch", func(t *testing.T) {
		spec, _ := table.Lookup(crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")))

		// ERC-721 style transfer: three indexed arguments, no data
		_, err := spec.Decode(
			[]common.Hash{spec.Topic, addressTopic(user1), addressTopic(user2), common.BigToHash(big.NewInt(1))},
			nil,
		)
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("short data", func(t *testing.T) {
		spec, _ := table.Lookup(crypto.Keccak256Hash([]byte("AscensionBonusClaimed(address,uint256)")))

		_, err := spec.Decode([]common.Hash{spec.Topic, addressTopic(user1)}, []byte{0x01})
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("wrong first topic", func(t *testing.T) {
		spec, _ := table.Lookup(crypto.Keccak256Hash([]byte("AscensionBonusClaimed(address,uint256)")))

		_, err := spec.Decode([]common.Hash{common.HexToHash("0x01")}, nil)
		require.ErrorIs(t, err, ErrDecode)
	})
}
