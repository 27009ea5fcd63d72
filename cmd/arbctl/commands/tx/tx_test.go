package tx

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/pkg/network"
	"github.com/altuslabsxyz/arbctl/pkg/network/wasm"
)

const (
	testSender  = "terra1h9tmwpwll5zpx6dvu28t8mvjk9jctu9nftm5ru"
	testCouncil = "terra1jtdz9fhrrwd8yak6e3z7utmkypvx0qf0n393c6"
)

func writeInitMsg(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "init.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadInitMsg(t *testing.T) {
	t.Run("raw object keeps number precision", func(t *testing.T) {
		path := writeInitMsg(t, `{"limit":123456789012345678901234567890,"id":9007199254740993}`)
		msg, err := readInitMsg(path, false)
		require.NoError(t, err)
		_, ok := msg.(json.RawMessage)
		require.True(t, ok)

		inst, err := wasm.Instantiate(testSender, "", 42, msg)
		require.NoError(t, err)
		require.Equal(t, `{"id":9007199254740993,"limit":123456789012345678901234567890}`, string(inst.InitMsg))
	})

	tests := []struct {
		name      string
		content   string
		arbConfig bool
	}{
		{"array", `[1,2]`, false},
		{"null", `null`, false},
		{"not json", `owner=me`, false},
		{"arb config with bad address", `{"owner":"nope"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readInitMsg(writeInitMsg(t, tt.content), tt.arbConfig)
			require.True(t, config.IsConfigurationError(err))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := readInitMsg(filepath.Join(t.TempDir(), "missing.json"), false)
		require.True(t, config.IsConfigurationError(err))
	})
}

func TestParseFunds(t *testing.T) {
	coins, err := parseFunds([]string{"1000uusd", "5uluna"})
	require.NoError(t, err)
	require.Equal(t, []sdk.Coin{sdk.NewInt64Coin("uusd", 1000), sdk.NewInt64Coin("uluna", 5)}, coins)

	coins, err = parseFunds(nil)
	require.NoError(t, err)
	require.Empty(t, coins)

	_, err = parseFunds([]string{"uusd"})
	require.Error(t, err)
}

func TestProposalIDOf(t *testing.T) {
	vote, err := wasm.CastVote(testSender, testCouncil, 8, wasm.VoteFor)
	require.NoError(t, err)

	require.Equal(t, "8", proposalIDOf([]network.Msg{vote, vote}))
	require.Equal(t, "?", proposalIDOf([]network.Msg{vote}))
}
