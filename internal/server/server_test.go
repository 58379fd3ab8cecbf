package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-gen-mcp/internal/generation"
)

// fakeGenerator records requests and returns a canned result.
type fakeGenerator struct {
	result *generation.Result
	err    error

	requests []generation.Request
	stories  []generation.StoryRequest
	edits    []generation.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req generation.Request) (*generation.Result, error) {
	f.requests = append(f.requests, req)
	return f.reply()
}

func (f *fakeGenerator) GenerateStory(_ context.Context, req generation.StoryRequest) (*generation.Result, error) {
	f.stories = append(f.stories, req)
	return f.reply()
}

func (f *fakeGenerator) Edit(_ context.Context, req generation.Request) (*generation.Result, error) {
	f.edits = append(f.edits, req)
	return f.reply()
}

func (f *fakeGenerator) reply() (*generation.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &generation.Result{Success: true, Message: "Successfully generated image", GeneratedFiles: []string{"/out/a.png"}}, nil
}

func callRequest(t *testing.T, tool string, args any) *MCPRequest {
	t.Helper()
	rawArgs, err := json.Marshal(args)
	require.NoError(t, err)
	params, err := json.Marshal(ToolCallParams{Name: tool, Arguments: rawArgs})
	require.NoError(t, err)
	return &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params}
}

func resultText(t *testing.T, resp *MCPResponse) string {
	t.Helper()
	require.NotNil(t, resp)
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	content, ok := result["content"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0]["type"])
	return content[0]["text"].(string)
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`, "test-1", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			require.NoError(t, json.Unmarshal([]byte(tt.json), &req))
			assert.Equal(t, tt.wantID, req.ID)
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, "2.0", req.JSONRPC)
		})
	}
}

func TestHandleInitialize(t *testing.T) {
	s := New(&fakeGenerator{}, zerolog.Nop(), WithVersion("1.2.3"))
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])
	info := result["serverInfo"].(map[string]interface{})
	assert.Equal(t, "image-gen-mcp", info["name"])
	assert.Equal(t, "1.2.3", info["version"])
}

func TestHandleRequest_MethodRouting(t *testing.T) {
	s := New(&fakeGenerator{}, zerolog.Nop())
	ctx := context.Background()

	assert.Nil(t, s.handleRequest(ctx, &MCPRequest{Method: "notifications/initialized"}))
	assert.Nil(t, s.handleRequest(ctx, &MCPRequest{Method: "notifications/cancelled"}))

	ping := s.handleRequest(ctx, &MCPRequest{ID: 7, Method: "ping"})
	assert.Nil(t, ping.Error)
	assert.Equal(t, 7, ping.ID)

	unknown := s.handleRequest(ctx, &MCPRequest{ID: 8, Method: "resources/list"})
	require.NotNil(t, unknown.Error)
	assert.Equal(t, CodeMethodNotFound, unknown.Error.Code)
	assert.Contains(t, unknown.Error.Message, "resources/list")
}

func TestRun_StdioSession(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{not json`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	s := New(&fakeGenerator{}, zerolog.Nop(), WithIO(strings.NewReader(input), &out))
	require.NoError(t, s.Run(context.Background()))

	var responses []map[string]any
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m))
		responses = append(responses, m)
	}
	require.Len(t, responses, 4)

	assert.EqualValues(t, 1, responses[0]["id"])
	assert.EqualValues(t, 2, responses[1]["id"])
	tools := responses[1]["result"].(map[string]any)["tools"].([]any)
	assert.Len(t, tools, 7)

	parseErr := responses[2]["error"].(map[string]any)
	assert.EqualValues(t, CodeParseError, parseErr["code"])
	assert.Nil(t, responses[2]["id"])

	assert.EqualValues(t, 3, responses[3]["id"])
	assert.NotNil(t, responses[3]["result"])
}

func TestRun_StopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	s := New(&fakeGenerator{}, zerolog.Nop(), WithIO(pr, io.Discard))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestToolsCall_NotInitialized(t *testing.T) {
	gen := &fakeGenerator{}
	s := New(gen, zerolog.Nop(), WithInitError(errors.New("IMAGE_GEN_API_KEY is not set")))

	resp := s.handleRequest(context.Background(), callRequest(t, ToolGenerateImage, map[string]any{"prompt": "a fox"}))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeNotInitialized, resp.Error.Code)
	assert.Equal(t, "IMAGE_GEN_API_KEY is not set", resp.Error.Data)
	assert.Empty(t, gen.requests)

	init := s.handleRequest(context.Background(), &MCPRequest{ID: 1, Method: "initialize"})
	assert.Nil(t, init.Error)
	list := s.handleRequest(context.Background(), &MCPRequest{ID: 2, Method: "tools/list"})
	assert.Nil(t, list.Error)
}
