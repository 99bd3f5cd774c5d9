package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructured(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    Command
		ok      bool
	}{
		{
			name:    "get",
			request: `{"command":"GET","key":"k1"}`,
			want:    Command{Type: CommandTGet, Key: "k1"},
			ok:      true,
		},
		{
			name:    "put",
			request: `{"command":"PUT","key":"k1","value":"v1"}`,
			want:    Command{Type: CommandTPut, Key: "k1", Value: "v1"},
			ok:      true,
		},
		{
			name:    "leading whitespace",
			request: "  \t" + `{"command":"GET","key":"k1"}`,
			want:    Command{Type: CommandTGet, Key: "k1"},
			ok:      true,
		},
		{
			name:    "empty key accepted",
			request: `{"command":"GET","key":""}`,
			want:    Command{Type: CommandTGet, Key: ""},
			ok:      true,
		},
		{name: "not json", request: "GET k1", ok: false},
		{name: "invalid json", request: `{"command":`, ok: false},
		{name: "missing command", request: `{"key":"k1"}`, ok: false},
		{name: "get missing key", request: `{"command":"GET"}`, ok: false},
		{name: "put missing value", request: `{"command":"PUT","key":"k1"}`, ok: false},
		{name: "lowercase command", request: `{"command":"get","key":"k1"}`, ok: false},
		{name: "unsupported command", request: `{"command":"LIST"}`, ok: false},
		{name: "wrong field type", request: `{"command":"GET","key":42}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := parseStructured(tt.request)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, cmd)
			}
		})
	}
}

func TestParsePlain(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    Command
		wantErr string
	}{
		{
			name:    "get",
			request: "GET k1",
			want:    Command{Type: CommandTGet, Key: "k1"},
		},
		{
			name:    "get lowercase",
			request: "get k1",
			want:    Command{Type: CommandTGet, Key: "k1"},
		},
		{
			name:    "put value spans rest of line",
			request: "PUT k1 a b\tc",
			want:    Command{Type: CommandTPut, Key: "k1", Value: "a b\tc"},
		},
		{
			name:    "tabs as delimiters",
			request: "\tPUT\tk1\tv1",
			want:    Command{Type: CommandTPut, Key: "k1", Value: "v1"},
		},
		{name: "list", request: "LIST", want: Command{Type: CommandTList}},
		{name: "status", request: "STATUS", want: Command{Type: CommandTStatus}},
		{name: "stop", request: "STOP", want: Command{Type: CommandTStop}},
		{
			name:    "add",
			request: "ADD 1 nodeA 127.0.0.1 5000 6000",
			want: Command{
				Type: CommandTAdd, NodeID: 1, NodeName: "nodeA",
				NodeIP: "127.0.0.1", RalePort: 5000, DStorePort: 6000,
			},
		},
		{
			name:    "add lenient numerics",
			request: "ADD abc nodeA 127.0.0.1 xyz 6000",
			want: Command{
				Type: CommandTAdd, NodeID: 0, NodeName: "nodeA",
				NodeIP: "127.0.0.1", RalePort: 0, DStorePort: 6000,
			},
		},
		{name: "remove", request: "REMOVE 7", want: Command{Type: CommandTRemove, NodeID: 7}},
		{
			name:    "unknown command keeps raw token",
			request: "FOO bar baz",
			want:    Command{Type: CommandTUnknown, Raw: "FOO"},
		},
		{name: "empty", request: "", wantErr: "Empty command"},
		{name: "whitespace only", request: " \t ", wantErr: "Empty command"},
		{name: "get without key", request: "GET", wantErr: "GET requires a key"},
		{name: "put without value", request: "PUT k1", wantErr: "PUT requires a key and a value"},
		{name: "add too few args", request: "ADD 1 nodeA", wantErr: "ADD requires node_id, name, ip, rale_port, dstore_port"},
		{name: "remove without id", request: "REMOVE", wantErr: "REMOVE requires a node_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parsePlain(tt.request)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestSplitToken(t *testing.T) {
	tests := []struct {
		in    string
		token string
		rest  string
	}{
		{in: "GET k1", token: "GET", rest: "k1"},
		{in: "  GET   k1  ", token: "GET", rest: "k1  "},
		{in: "GET\tk1 v", token: "GET", rest: "k1 v"},
		{in: "GET", token: "GET", rest: ""},
		{in: "", token: "", rest: ""},
		{in: " \t", token: "", rest: ""},
	}

	for _, tt := range tests {
		token, rest := splitToken(tt.in)
		assert.Equal(t, tt.token, token, "input %q", tt.in)
		assert.Equal(t, tt.rest, rest, "input %q", tt.in)
	}
}
