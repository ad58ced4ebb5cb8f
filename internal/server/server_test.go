package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/image-science/internal/engine"
)

// newTestServer returns a server on the default engine and checks that no
// bitmap outlives the test.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := engine.New(engine.DefaultOptions())
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	t.Cleanup(func() {
		if n := eng.Live(); n != 0 {
			t.Errorf("%d bitmaps still live after test", n)
		}
	})
	return New(eng, "test")
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	if s.eng == nil {
		t.Fatal("New() did not keep the engine")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	result := resp.Result.(map[string]interface{})
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != Name || info["version"] != "test" {
		t.Errorf("serverInfo = %v", info)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "p", Method: "ping"})
	if resp == nil || resp.Error != nil || resp.ID != "p" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleRequest_Notification(t *testing.T) {
	s := newTestServer(t)

	if resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
		t.Errorf("expected no response, got %+v", resp)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "resources/list"})
	if resp == nil || resp.Error == nil {
		t.Fatalf("expected error response, got %+v", resp)
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Code = %d, want -32601", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "resources/list") {
		t.Errorf("Message = %q", resp.Error.Message)
	}
}

func TestServe(t *testing.T) {
	s := newTestServer(t)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`this is not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}

	var ids []interface{}
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", scanner.Text(), err)
		}
		if resp.JSONRPC != "2.0" {
			t.Errorf("JSONRPC = %q", resp.JSONRPC)
		}
		ids = append(ids, resp.ID)
	}

	want := []interface{}{float64(1), float64(2), float64(3)}
	if len(ids) != len(want) {
		t.Fatalf("got %d responses, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("response %d id = %v, want %v", i, ids[i], want[i])
		}
	}
}
