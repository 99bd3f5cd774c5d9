package interpreter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ralekv/ralekv/lib/cluster"
	"github.com/ralekv/ralekv/lib/cluster/lcluster"
	"github.com/ralekv/ralekv/lib/db"
	"github.com/ralekv/ralekv/lib/db/engines/memdb"
	"github.com/ralekv/ralekv/lib/store"
	"github.com/ralekv/ralekv/lib/store/lstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------------------------------
// Test Fakes
// --------------------------------------------------------------------------

// fakeStore records calls so tests can assert that validation happens
// before any external call.
type fakeStore struct {
	data        map[string]string
	getErr      error
	submitErr   error
	getCalls    int
	submitCalls []string
}

func (f *fakeStore) Get(key string) (string, error) {
	f.getCalls++
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.data[key]
	if !ok {
		return "", store.NewError(store.RetCKeyNotFound, "key not found")
	}
	return value, nil
}

func (f *fakeStore) Submit(command string) error {
	f.submitCalls = append(f.submitCalls, command)
	return f.submitErr
}

// fakeCluster returns a fixed cluster view.
type fakeCluster struct {
	role   cluster.Role
	selfID uint64
	count  uint64
}

func (f *fakeCluster) CurrentRole() cluster.Role { return f.role }
func (f *fakeCluster) SelfID() uint64            { return f.selfID }
func (f *fakeCluster) NodeCount() uint64         { return f.count }

const testBufferSize = 4096

func interpret(t *testing.T, i *Interpreter, request string) (string, Status) {
	t.Helper()
	buf := NewResponseBuffer(testBufferSize)
	status := i.Interpret(request, buf)
	return buf.String(), status
}

// --------------------------------------------------------------------------
// GET / PUT
// --------------------------------------------------------------------------

func TestGetReturnsStoredValue(t *testing.T) {
	st := &fakeStore{data: map[string]string{"k1": "v1"}}
	i := New(st, &fakeCluster{})

	resp, status := interpret(t, i, "GET k1")
	assert.Equal(t, "OK: v1", resp)
	assert.Equal(t, StatusSuccess, status)
}

func TestGetMissingKeySurfacesStoreError(t *testing.T) {
	st := &fakeStore{data: map[string]string{}}
	i := New(st, &fakeCluster{})

	resp, status := interpret(t, i, "GET nope")
	assert.Equal(t, "ERROR: key not found", resp)
	assert.Equal(t, StatusError, status)
}

func TestKeyTooLongValidatedBeforeStoreCall(t *testing.T) {
	st := &fakeStore{data: map[string]string{}}
	i := New(st, &fakeCluster{})
	longKey := strings.Repeat("k", MaxKeyLength+1)

	resp, status := interpret(t, i, "GET "+longKey)
	assert.Equal(t, "ERROR: Key too long", resp)
	assert.Equal(t, StatusError, status)
	assert.Zero(t, st.getCalls, "store must not be called for an oversized key")

	resp, status = interpret(t, i, "PUT "+longKey+" v")
	assert.Equal(t, "ERROR: Key too long", resp)
	assert.Equal(t, StatusError, status)
	assert.Empty(t, st.submitCalls, "store must not be called for an oversized key")
}

func TestValueTooLongValidatedBeforeStoreCall(t *testing.T) {
	st := &fakeStore{}
	i := New(st, &fakeCluster{})

	// Interpret directly with an oversized value; the request-length limit
	// makes this unreachable over the wire but the handler still validates.
	cmd := Command{Type: CommandTPut, Key: "k", Value: strings.Repeat("v", MaxValueLength+1)}
	buf := NewResponseBuffer(testBufferSize)
	status := i.dispatch(cmd, buf)

	assert.Equal(t, "ERROR: Value too long", buf.String())
	assert.Equal(t, StatusError, status)
	assert.Empty(t, st.submitCalls)
}

func TestPutSubmitsSyntheticMutation(t *testing.T) {
	st := &fakeStore{}
	i := New(st, &fakeCluster{})

	resp, status := interpret(t, i, "PUT k1 some value")
	assert.Equal(t, "OK: some value", resp)
	assert.Equal(t, StatusSuccess, status)
	require.Len(t, st.submitCalls, 1)
	assert.Equal(t, "PUT k1 some value", st.submitCalls[0])
}

func TestPutValueSpansRestOfLine(t *testing.T) {
	st := &fakeStore{}
	i := New(st, &fakeCluster{})

	resp, _ := interpret(t, i, "PUT k1 \t  value with   spaces")
	assert.Equal(t, "OK: value with   spaces", resp)
}

func TestPutErrorSurfacesStoreError(t *testing.T) {
	st := &fakeStore{submitErr: store.NewError(store.RetCInternalError, "raft proposal timeout")}
	i := New(st, &fakeCluster{})

	resp, status := interpret(t, i, "PUT k1 v1")
	assert.Equal(t, "ERROR: raft proposal timeout", resp)
	assert.Equal(t, StatusError, status)
}

// TestPutThenGetRoundTrip exercises the interpreter against a real local
// store backend.
func TestPutThenGetRoundTrip(t *testing.T) {
	st := lstore.NewLocalStore(func() db.KVDB { return memdb.New() })
	i := New(st, lcluster.NewLocalCluster(0))

	resp, status := interpret(t, i, "PUT k1 first")
	require.Equal(t, StatusSuccess, status)
	require.Equal(t, "OK: first", resp)

	resp, status = interpret(t, i, "PUT k1 second value")
	require.Equal(t, StatusSuccess, status)
	require.Equal(t, "OK: second value", resp)

	resp, status = interpret(t, i, "GET k1")
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, "OK: second value", resp)
}

// --------------------------------------------------------------------------
// Dual Grammar
// --------------------------------------------------------------------------

func TestStructuredAndPlainGetAreEquivalent(t *testing.T) {
	st := &fakeStore{data: map[string]string{"k1": "v1"}}
	i := New(st, &fakeCluster{})

	structured, structuredStatus := interpret(t, i, `{"command":"GET","key":"k1"}`)
	plain, plainStatus := interpret(t, i, "GET k1")

	assert.Equal(t, plain, structured)
	assert.Equal(t, plainStatus, structuredStatus)
}

func TestStructuredPut(t *testing.T) {
	st := &fakeStore{}
	i := New(st, &fakeCluster{})

	resp, status := interpret(t, i, `{"command":"PUT","key":"k1","value":"v1"}`)
	assert.Equal(t, "OK: v1", resp)
	assert.Equal(t, StatusSuccess, status)
	require.Len(t, st.submitCalls, 1)
	assert.Equal(t, "PUT k1 v1", st.submitCalls[0])
}

// TestStructuredPutRejectsKeyWithWhitespace covers a key that only the
// structured grammar can produce: "a b" would be split by the mutation
// grammar and stored under "a", so both PUT and GET must reject it before
// any store call instead of answering OK for a key that was never stored.
func TestStructuredPutRejectsKeyWithWhitespace(t *testing.T) {
	st := &fakeStore{data: map[string]string{}}
	i := New(st, &fakeCluster{})

	resp, status := interpret(t, i, `{"command":"PUT","key":"a b","value":"v1"}`)
	assert.Equal(t, "ERROR: Invalid key", resp)
	assert.Equal(t, StatusError, status)
	assert.Empty(t, st.submitCalls, "store must not see a mutation for an invalid key")

	resp, status = interpret(t, i, `{"command":"GET","key":"a b"}`)
	assert.Equal(t, "ERROR: Invalid key", resp)
	assert.Equal(t, StatusError, status)
	assert.Zero(t, st.getCalls)

	// Tabs, control characters and empty keys are rejected the same way.
	for _, request := range []string{
		`{"command":"PUT","key":"a\tb","value":"v1"}`,
		`{"command":"PUT","key":"a\nb","value":"v1"}`,
		`{"command":"PUT","key":"","value":"v1"}`,
		`{"command":"GET","key":""}`,
	} {
		resp, status = interpret(t, i, request)
		assert.Equal(t, "ERROR: Invalid key", resp, "request %q", request)
		assert.Equal(t, StatusError, status)
	}
	assert.Empty(t, st.submitCalls)
}

// TestSpacedKeyLeavesStoreUntouched drives the rejected request against a
// real local store and verifies no fragment of the key ended up stored.
func TestSpacedKeyLeavesStoreUntouched(t *testing.T) {
	st := lstore.NewLocalStore(func() db.KVDB { return memdb.New() })
	i := New(st, lcluster.NewLocalCluster(0))

	resp, status := interpret(t, i, `{"command":"PUT","key":"a b","value":"v1"}`)
	require.Equal(t, StatusError, status)
	require.Equal(t, "ERROR: Invalid key", resp)

	resp, status = interpret(t, i, "GET a")
	assert.Equal(t, StatusError, status)
	assert.Equal(t, "ERROR: key not found", resp)
}

func TestStructuredPutRejectsValueWithLineTerminator(t *testing.T) {
	st := &fakeStore{}
	i := New(st, &fakeCluster{})

	for _, request := range []string{
		`{"command":"PUT","key":"k1","value":"v1\nv2"}`,
		`{"command":"PUT","key":"k1","value":"v1\r"}`,
	} {
		resp, status := interpret(t, i, request)
		assert.Equal(t, "ERROR: Invalid value", resp, "request %q", request)
		assert.Equal(t, StatusError, status)
	}
	assert.Empty(t, st.submitCalls)

	// Spaces in the value remain legal, they survive the rest-of-line
	// mutation encoding.
	resp, status := interpret(t, i, `{"command":"PUT","key":"k1","value":"v1 v2"}`)
	assert.Equal(t, "OK: v1 v2", resp)
	assert.Equal(t, StatusSuccess, status)
}

func TestMalformedStructuredFallsThroughToPlainText(t *testing.T) {
	st := &fakeStore{data: map[string]string{}}
	i := New(st, &fakeCluster{})

	// A JSON object without the expected shape is re-parsed as plain text;
	// its first token is then an unknown command.
	resp, status := interpret(t, i, `{"command":"GET"}`)
	assert.Equal(t, `ERROR: Unknown command '{"command":"GET"}'`, resp)
	assert.Equal(t, StatusError, status)
}

// --------------------------------------------------------------------------
// Malformed Input
// --------------------------------------------------------------------------

func TestEmptyRequest(t *testing.T) {
	i := New(&fakeStore{}, &fakeCluster{})

	for _, request := range []string{"", "   ", "\t \t"} {
		resp, status := interpret(t, i, request)
		assert.Equal(t, "ERROR: Empty command", resp, "request %q", request)
		assert.Equal(t, StatusError, status)
	}
}

func TestRequestTooLong(t *testing.T) {
	st := &fakeStore{}
	i := New(st, &fakeCluster{})

	resp, status := interpret(t, i, "GET "+strings.Repeat("x", MaxRequestLength))
	assert.Equal(t, "ERROR: Request too long", resp)
	assert.Equal(t, StatusError, status)
	assert.Zero(t, st.getCalls)
}

func TestUnknownCommand(t *testing.T) {
	i := New(&fakeStore{}, &fakeCluster{})

	resp, status := interpret(t, i, "FOO bar")
	assert.Equal(t, "ERROR: Unknown command 'FOO'", resp)
	assert.Equal(t, StatusError, status)
}

func TestMissingArguments(t *testing.T) {
	tests := []struct {
		request string
		want    string
	}{
		{request: "GET", want: "ERROR: GET requires a key"},
		{request: "PUT", want: "ERROR: PUT requires a key and a value"},
		{request: "PUT key", want: "ERROR: PUT requires a key and a value"},
		{request: "ADD 1 nodeA 127.0.0.1 5000", want: "ERROR: ADD requires node_id, name, ip, rale_port, dstore_port"},
		{request: "REMOVE", want: "ERROR: REMOVE requires a node_id"},
	}

	i := New(&fakeStore{}, &fakeCluster{})
	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			resp, status := interpret(t, i, tt.request)
			assert.Equal(t, tt.want, resp)
			assert.Equal(t, StatusError, status)
		})
	}
}

func TestCommandNameCaseInsensitiveInPlainText(t *testing.T) {
	st := &fakeStore{data: map[string]string{"k1": "v1"}}
	i := New(st, &fakeCluster{})

	for _, request := range []string{"get k1", "Get k1", "GET k1"} {
		resp, status := interpret(t, i, request)
		assert.Equal(t, "OK: v1", resp, "request %q", request)
		assert.Equal(t, StatusSuccess, status)
	}
}

// --------------------------------------------------------------------------
// LIST / STATUS
// --------------------------------------------------------------------------

func TestListSyntheticNodes(t *testing.T) {
	i := New(&fakeStore{}, &fakeCluster{role: cluster.RoleLeader, selfID: 1, count: 3})

	resp, status := interpret(t, i, "LIST")
	require.Equal(t, StatusSuccess, status)

	var parsed struct {
		Nodes []nodeEntry `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp), &parsed), "LIST response must be valid JSON: %s", resp)
	require.Len(t, parsed.Nodes, 3)

	for idx, node := range parsed.Nodes {
		assert.Equal(t, uint64(idx), node.ID)
		assert.Equal(t, "unknown", node.IP)
		assert.Zero(t, node.RalePort)
		assert.Zero(t, node.DStorePort)
		if idx == 1 {
			assert.Equal(t, "leader", node.Role)
		} else {
			assert.Equal(t, "unknown", node.Role)
		}
	}
}

func TestListTruncationStaysClean(t *testing.T) {
	i := New(&fakeStore{}, &fakeCluster{role: cluster.RoleFollower, selfID: 0, count: 100})

	buf := NewResponseBuffer(128)
	status := i.Interpret("LIST", buf)

	assert.Equal(t, StatusSuccess, status)
	assert.True(t, buf.Truncated())
	assert.LessOrEqual(t, buf.Len(), 128)
	// Truncated output must not pretend to be complete
	assert.False(t, strings.HasSuffix(buf.String(), "]}"))
	assert.True(t, strings.HasPrefix(buf.String(), `{"nodes": [`))
}

func TestStatusLine(t *testing.T) {
	i := New(&fakeStore{}, &fakeCluster{role: cluster.RoleFollower, selfID: 2, count: 5})

	resp, status := interpret(t, i, "STATUS")
	assert.Equal(t, "STATUS: node_id=2, role=follower, cluster_size=5", resp)
	assert.Equal(t, StatusSuccess, status)
}

// --------------------------------------------------------------------------
// STOP / ADD / REMOVE
// --------------------------------------------------------------------------

func TestStopOnlyAcknowledges(t *testing.T) {
	st := &fakeStore{}
	i := New(st, &fakeCluster{})

	resp, status := interpret(t, i, "STOP")
	assert.Equal(t, "OK: stop command received", resp)
	assert.Equal(t, StatusSuccess, status)
	assert.Zero(t, st.getCalls)
	assert.Empty(t, st.submitCalls)
}

func TestAddNotImplemented(t *testing.T) {
	i := New(&fakeStore{}, &fakeCluster{})

	resp, status := interpret(t, i, "ADD 1 nodeA 127.0.0.1 5000 6000")
	assert.Equal(t, "ERROR: ADD command not implemented in current API", resp)
	assert.Equal(t, StatusError, status)
}

func TestRemoveNotImplemented(t *testing.T) {
	i := New(&fakeStore{}, &fakeCluster{})

	resp, status := interpret(t, i, "REMOVE 1")
	assert.Equal(t, "ERROR: REMOVE command not implemented in current API", resp)
	assert.Equal(t, StatusError, status)
}

func TestAddWithNonNumericPortsStillNotImplemented(t *testing.T) {
	// Non-numeric numeric arguments parse as zero, the command itself still
	// reports the fixed not-implemented error.
	i := New(&fakeStore{}, &fakeCluster{})

	resp, status := interpret(t, i, "ADD abc nodeA 127.0.0.1 xyz 6000")
	assert.Equal(t, "ERROR: ADD command not implemented in current API", resp)
	assert.Equal(t, StatusError, status)
}
