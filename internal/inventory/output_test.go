package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"nathanbeddoewebdev/nova-inventory/internal/domain"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "json", want: FormatJSON},
		{in: " YAML ", want: FormatYAML},
		{in: "toml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// Every host named in a group must have an entry under _meta.hostvars
// once the document is printed and parsed back.
func TestWriteList_RoundTripHostVars(t *testing.T) {
	sessions := map[string]*fakeSession{
		"r1": {servers: []domain.Server{
			server("a1", "web-1", map[string]string{"group": "web", "groups": "lb,edge"}, network("n", floating("198.51.100.1"))),
			server("a2", "db-1", map[string]string{"role": "db"}),
		}},
		"r2": {servers: []domain.Server{
			server("b1", "web-2", map[string]string{"group": "web"}, network("n", floating("198.51.100.2"))),
		}},
	}

	inv, err := NewBuilder(descriptor("r1", "r2"), connectorFor(sessions), Options{}).List(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteList(&buf, inv, FormatJSON))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	var meta struct {
		HostVars map[string]map[string]any `json:"hostvars"`
	}
	require.Contains(t, doc, MetaKey)
	require.NoError(t, json.Unmarshal(doc[MetaKey], &meta))

	seen := 0
	for name, raw := range doc {
		if name == MetaKey {
			continue
		}
		var hosts []string
		require.NoError(t, json.Unmarshal(raw, &hosts), "group %s", name)
		for _, h := range hosts {
			require.Contains(t, meta.HostVars, h, "group %s", name)
			seen++
		}
	}
	require.Positive(t, seen)
}

func TestWriteList_Indent(t *testing.T) {
	inv := newInventory()
	inv.add("region1", "web-1")
	inv.vars("web-1")["nova_region"] = "region1"

	var buf bytes.Buffer
	require.NoError(t, WriteList(&buf, inv, FormatJSON))

	want := `{
  "_meta": {
    "hostvars": {
      "web-1": {
        "nova_region": "region1"
      }
    }
  },
  "region1": [
    "web-1"
  ]
}
`
	require.Equal(t, want, buf.String())
}

func TestWriteHost(t *testing.T) {
	t.Run("indent and no html escaping", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHost(&buf, map[string]any{"nova_name": "a<b>", "ansible_ssh_host": "10.0.0.1"}, FormatJSON))

		want := `{
    "ansible_ssh_host": "10.0.0.1",
    "nova_name": "a<b>"
}
`
		require.Equal(t, want, buf.String())
	})

	t.Run("nil vars print an empty object", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHost(&buf, nil, FormatJSON))
		require.Equal(t, "{}\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHost(&buf, map[string]any{"nova_region": "r1"}, FormatYAML))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Equal(t, "r1", got["nova_region"])
		require.True(t, strings.HasPrefix(buf.String(), "nova_region: r1"))
	})
}
