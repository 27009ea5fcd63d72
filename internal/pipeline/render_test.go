package pipeline

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

func TestRender(t *testing.T) {
	tx := &network.SignedTx{Tx: json.RawMessage(
		`{"memo":"line\nbreak\u0007","msg":[{"value":{"link":"https://example.com/a?b=1&c=2","amount":"1000000"}}]}`,
	)}

	rendered, err := Render(tx)
	require.NoError(t, err)

	require.Contains(t, rendered, `"memo": "linebreak"`)
	require.Contains(t, rendered, `"link": "https://example.com/a?b=1&c=2"`)
	require.Contains(t, rendered, `"amount": "1000000"`)
	require.NotContains(t, rendered, `\/`)
	require.NotContains(t, rendered, `\u0026`)
	for _, r := range rendered {
		if r == '\n' {
			continue
		}
		require.False(t, r < 0x20, "control character %q in output", r)
	}
	require.False(t, strings.HasSuffix(rendered, "\n"))
}

func TestRender_Deterministic(t *testing.T) {
	tx := &network.SignedTx{Tx: json.RawMessage(`{"b":1,"a":{"d":2,"c":3}}`)}

	first, err := Render(tx)
	require.NoError(t, err)
	second, err := Render(tx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Less(t, strings.Index(first, `"a"`), strings.Index(first, `"b"`))
}

func TestRender_Invalid(t *testing.T) {
	_, err := Render(nil)
	require.Error(t, err)

	_, err = Render(&network.SignedTx{Tx: json.RawMessage(`{`)})
	require.Error(t, err)
}
