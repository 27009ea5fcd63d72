package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/internal/output"
	"github.com/altuslabsxyz/arbctl/internal/pipeline"
	"github.com/altuslabsxyz/arbctl/pkg/network/cosmos"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testArb      = "terra1jtdz9fhrrwd8yak6e3z7utmkypvx0qf0n393c6"
	testPair     = "terra144m28x7d3lzjzp423mdydll6cmfafg407ve3ev"
)

// fakeLCD serves the legacy LCD routes the commands use.
type fakeLCD struct {
	broadcastBody string
	queryResult   string
	chainID       string

	hits       atomic.Int32
	broadcasts atomic.Int32
}

func (f *fakeLCD) handler(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/cosmos/base/tendermint/v1beta1/node_info":
		chainID := f.chainID
		if chainID == "" {
			chainID = "localterra"
		}
		fmt.Fprintf(w, `{"default_node_info":{"network":%q}}`, chainID)
	case strings.HasPrefix(r.URL.Path, "/cosmos/auth/v1beta1/accounts/"):
		fmt.Fprint(w, `{"account":{"@type":"/cosmos.auth.v1beta1.BaseAccount","address":"terra1x","account_number":"9","sequence":"3"}}`)
	case r.URL.Path == "/txs/estimate_fee":
		fmt.Fprint(w, `{"height":"0","result":{"fee":{"amount":[],"gas":"200000"}}}`)
	case r.URL.Path == "/txs":
		f.broadcasts.Add(1)
		fmt.Fprint(w, f.broadcastBody)
	case strings.HasSuffix(r.URL.Path, "/store"):
		fmt.Fprintf(w, `{"query_result":%s}`, f.queryResult)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"not found"}`)
	}
}

type testEnv struct {
	lcd      *fakeLCD
	home     string
	config   string
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	rendered []string
}

func newTestEnv(t *testing.T, lcd *fakeLCD) *testEnv {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(lcd.handler))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "arbctl.toml")
	content := fmt.Sprintf(`
[networks.local]
chain_id = "localterra"
lcd_url = %q

[networks.local.contracts]
mars_token = "terra1h9tmwpwll5zpx6dvu28t8mvjk9jctu9nftm5ru"
mars_council = "terra1jtdz9fhrrwd8yak6e3z7utmkypvx0qf0n393c6"
mars_red_bank = "terra1avkm5w0gzwm92h0dlxymsdhx4l2rm7k0lxnwq7"
astroport_mars_ust_pair = %q
`, server.URL, testPair)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	t.Setenv("MNEMONIC", testMnemonic)

	return &testEnv{
		lcd:    lcd,
		home:   filepath.Join(dir, "home"),
		config: cfgPath,
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
}

func (e *testEnv) run(approve bool, args ...string) error {
	root := NewRootCmd(
		WithOutput(e.out, e.errOut),
		WithConfirm(func(_ context.Context, rendered string) (bool, error) {
			e.rendered = append(e.rendered, rendered)
			return approve, nil
		}),
	)
	root.SetArgs(append(args, "--home", e.home, "--config", e.config, "--no-color"))
	return root.ExecuteContext(context.Background())
}

func successBody(events string) string {
	return `{"height":"12","txhash":"ABC123","code":0,"raw_log":"[]","logs":[{"msg_index":0,"log":"","events":[` + events + `]}]}`
}

func TestSwap_Approved(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{broadcastBody: successBody("")})

	err := env.run(true, "swap", "--network", "local", "--offer-amount", "1000000")
	require.NoError(t, err)

	require.Contains(t, env.out.String(), "Success! Txhash: ABC123")
	require.Equal(t, int32(1), env.lcd.broadcasts.Load())
	require.Len(t, env.rendered, 1)
	require.Contains(t, env.rendered[0], testPair)
	require.Contains(t, env.rendered[0], `"max_spread": "0.5"`)
	require.Contains(t, env.rendered[0], `"denom": "uusd"`)
}

func TestSwap_DeclinedNeverBroadcasts(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{broadcastBody: successBody("")})

	err := env.run(false, "swap", "--network", "local", "--offer-amount", "1000000")
	require.Error(t, err)
	require.Equal(t, ExitAborted, ExitCode(err))
	require.Equal(t, int32(0), env.lcd.broadcasts.Load())
	require.NotContains(t, env.out.String(), "Success!")
}

func TestCreateProposal_VotesForNextProposal(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{
		broadcastBody: successBody(""),
		queryResult:   `{"proposal_count":7,"proposals":[]}`,
	})

	err := env.run(true, "create-proposal", "--network", "local",
		"--account", testArb, "--amount", "1000000000000")
	require.NoError(t, err)

	require.Len(t, env.rendered, 1)
	require.Contains(t, env.rendered[0], `"proposal_id": 8`)
	require.Contains(t, env.rendered[0], `"vote": "for"`)
	require.Contains(t, env.errOut.String(), "proposal 8")
}

func TestStoreCode_PrintsCodeID(t *testing.T) {
	wasmPath := filepath.Join(t.TempDir(), "arb.wasm")
	require.NoError(t, os.WriteFile(wasmPath, []byte("\x00asm\x01\x00\x00\x00"), 0o600))

	env := newTestEnv(t, &fakeLCD{
		broadcastBody: successBody(`{"type":"store_code","attributes":[{"key":"sender","value":"terra1x"},{"key":"code_id","value":"42"}]}`),
	})

	err := env.run(true, "store-code", "--network", "local", "--wasm", wasmPath)
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "Success! Txhash: ABC123")
	require.Contains(t, env.out.String(), "Code ID: 42")
}

func TestStoreCode_MissingEvent(t *testing.T) {
	wasmPath := filepath.Join(t.TempDir(), "arb.wasm")
	require.NoError(t, os.WriteFile(wasmPath, []byte("\x00asm"), 0o600))

	env := newTestEnv(t, &fakeLCD{broadcastBody: successBody(`{"type":"message","attributes":[]}`)})

	err := env.run(true, "store-code", "--network", "local", "--wasm", wasmPath)
	require.Error(t, err)
	require.Equal(t, ExitMissingEvent, ExitCode(err))
}

func TestInstantiate_PrintsAddress(t *testing.T) {
	initPath := filepath.Join(t.TempDir(), "init.json")
	require.NoError(t, os.WriteFile(initPath, []byte(`{"owner":"`+testArb+`"}`), 0o600))

	env := newTestEnv(t, &fakeLCD{
		broadcastBody: successBody(`{"type":"instantiate_contract","attributes":[{"key":"code_id","value":"42"},{"key":"contract_address","value":"` + testArb + `"}]}`),
	})

	err := env.run(true, "instantiate", "--network", "local", "--code-id", "42", "--init-msg", initPath)
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "Contract address: "+testArb)
}

func TestInstantiate_InvalidArbConfig(t *testing.T) {
	initPath := filepath.Join(t.TempDir(), "init.json")
	require.NoError(t, os.WriteFile(initPath, []byte(`{"owner":"nope"}`), 0o600))

	lcd := &fakeLCD{broadcastBody: successBody("")}
	env := newTestEnv(t, lcd)

	err := env.run(true, "instantiate", "--network", "local", "--code-id", "42", "--init-msg", initPath, "--arb-config")
	require.Equal(t, ExitConfig, ExitCode(err))
	require.Equal(t, int32(0), lcd.hits.Load())
}

func TestChainFailure(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{
		broadcastBody: `{"height":"12","txhash":"BAD","code":5,"codespace":"sdk","raw_log":"insufficient funds: 1uusd is smaller than 42000uusd"}`,
	})

	err := env.run(true, "finalize-arb", "--network", "local", "--contract-address", testArb)
	require.Error(t, err)
	require.Equal(t, ExitChainFailure, ExitCode(err))
	require.Equal(t, int32(1), env.lcd.broadcasts.Load())

	var errOut bytes.Buffer
	PrintError(output.NewLoggerWithWriters(&bytes.Buffer{}, &errOut), err)
	require.Contains(t, errOut.String(), "insufficient funds: 1uusd is smaller than 42000uusd")
}

func TestFinalizeArb_MessageKey(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{broadcastBody: successBody("")})

	err := env.run(true, "finalize-arb", "--network", "local", "--contract-address", testArb,
		"--message-key", "finialize_arb")
	require.NoError(t, err)
	require.Len(t, env.rendered, 1)
	require.Contains(t, env.rendered[0], `"finialize_arb": {}`)
}

func TestConfigurationErrorsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
		args  []string
	}{
		{
			name:  "missing mnemonic",
			setup: func(t *testing.T) { t.Setenv("MNEMONIC", "") },
			args:  []string{"finalize-arb", "--network", "local", "--contract-address", testArb},
		},
		{
			name: "unknown network",
			args: []string{"finalize-arb", "--network", "moonnet", "--contract-address", testArb},
		},
		{
			name: "no network",
			args: []string{"finalize-arb", "--contract-address", testArb},
		},
		{
			name: "missing contract",
			args: []string{"swap", "--network", "localterra", "--offer-amount", "1"},
		},
		{
			name: "unknown finalize key",
			args: []string{"finalize-arb", "--network", "local", "--contract-address", testArb, "--message-key", "finish"},
		},
		{
			name: "bad gas price",
			args: []string{"finalize-arb", "--network", "local", "--contract-address", testArb, "--gas-price", "free"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lcd := &fakeLCD{broadcastBody: successBody("")}
			env := newTestEnv(t, lcd)
			if tt.setup != nil {
				tt.setup(t)
			}

			err := env.run(true, tt.args...)
			require.Error(t, err)
			require.Equal(t, ExitConfig, ExitCode(err), err.Error())
			require.Equal(t, int32(0), lcd.hits.Load())
		})
	}
}

func TestChainIDMismatch(t *testing.T) {
	lcd := &fakeLCD{broadcastBody: successBody(""), chainID: "columbus-5"}
	env := newTestEnv(t, lcd)

	err := env.run(true, "finalize-arb", "--network", "local", "--contract-address", testArb)
	require.Equal(t, ExitConfig, ExitCode(err))
	require.Equal(t, int32(0), lcd.broadcasts.Load())
}

func TestQueryArb(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{queryResult: `{"debt":"100","unbonding":true}`})

	err := env.run(true, "query-arb", "status", "--network", "local", "--contract-address", testArb)
	require.NoError(t, err)
	require.Contains(t, env.out.String(), `"debt": "100"`)
	require.Empty(t, env.rendered)
}

func TestQueryArb_InvalidKind(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{})

	err := env.run(true, "query-arb", "balances", "--network", "local", "--contract-address", testArb)
	require.Error(t, err)
	require.Equal(t, ExitError, ExitCode(err))
}

func TestProposals(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{queryResult: `{"proposal_count":7}`})

	err := env.run(true, "proposals", "--network", "local")
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "next:  8")
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{})

	err := env.run(true, "config", "show", "--network", "local", "--gas-price", "0.2uusd")
	require.NoError(t, err)

	out := env.out.String()
	require.Contains(t, out, "0.2uusd")
	require.Contains(t, out, "MNEMONIC: set")
	require.NotContains(t, out, "abandon")
	require.Contains(t, out, env.config)
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t, &fakeLCD{})

	require.NoError(t, env.run(true, "config", "init"))
	require.FileExists(t, filepath.Join(env.home, "arbctl.toml"))

	err := env.run(true, "config", "init")
	require.Equal(t, ExitConfig, ExitCode(err))

	require.NoError(t, env.run(true, "config", "init", "--force"))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("boom"), ExitError},
		{"config", &config.ConfigurationError{Field: "network", Reason: "unknown"}, ExitConfig},
		{"aborted", &pipeline.UserAbortedError{}, ExitAborted},
		{"chain failure", &pipeline.TxExecutionError{Code: 5}, ExitChainFailure},
		{"missing event", &pipeline.MissingEventError{EventType: "store_code", Attribute: "code_id"}, ExitMissingEvent},
		{"signing", &pipeline.SigningError{Err: errors.New("bad key")}, ExitSigning},
		{"chain mismatch", &cosmos.ChainIDMismatchError{Expected: "a", Actual: "b"}, ExitConfig},
		{"wrapped", fmt.Errorf("run: %w", &pipeline.UserAbortedError{}), ExitAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestPrintError_Aborted(t *testing.T) {
	var errOut bytes.Buffer
	logger := output.NewLoggerWithWriters(&bytes.Buffer{}, &errOut)
	logger.SetNoColor(true)

	PrintError(logger, &pipeline.UserAbortedError{Cause: output.ErrInterrupted})
	require.Contains(t, errOut.String(), "Interrupted")
}
