package server

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ironsheep/strike-planner/internal/config"
	"github.com/ironsheep/strike-planner/internal/targets"
)

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResult unmarshals the text content of a successful response into v.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %+v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
}

func createCoordsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coords.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write coords file: %v", err)
	}
	return path
}

func inline(points ...targets.Point) []map[string]int {
	out := make([]map[string]int, len(points))
	for i, p := range points {
		out[i] = map[string]int{"x": p.X, "y": p.Y}
	}
	return out
}

func TestHandleToolsCall_StrikeOptimize(t *testing.T) {
	s := New(nil, nil)
	resp := callTool(t, s, "strike_optimize", map[string]interface{}{
		"points": inline(targets.Point{X: 0, Y: 0}, targets.Point{X: 10, Y: 0}),
		"radius": 5,
	})

	var report StrikeReport
	decodeResult(t, resp, &report)

	if report.Center != (targets.Point{X: 5, Y: 0}) {
		t.Errorf("Center: got %v, want 5,0", report.Center)
	}
	if report.Count != 2 || report.Total != 2 {
		t.Errorf("Count/Total: got %d/%d, want 2/2", report.Count, report.Total)
	}
	if len(report.Covered) != 2 {
		t.Errorf("Covered: got %v", report.Covered)
	}
	if report.EfficiencyPercent != 100 {
		t.Errorf("EfficiencyPercent: got %v, want 100", report.EfficiencyPercent)
	}
	if report.Report != "Optimal coordinates are {5, 0} with 2 target(s) to destroy." {
		t.Errorf("Report: got %q", report.Report)
	}
}

func TestHandleToolsCall_StrikeOptimizeFastPath(t *testing.T) {
	s := New(nil, nil)
	resp := callTool(t, s, "strike_optimize", map[string]interface{}{
		"points": inline(targets.Point{X: 1, Y: 1}, targets.Point{X: 98, Y: 3}),
		"radius": 75,
	})

	var report StrikeReport
	decodeResult(t, resp, &report)

	if !report.FastPath {
		t.Error("expected fast path")
	}
	if report.Center != (targets.Point{X: 50, Y: 50}) {
		t.Errorf("Center: got %v, want 50,50", report.Center)
	}
}

func TestHandleToolsCall_StrikeOptimizeFromFile(t *testing.T) {
	s := New(nil, nil)
	path := createCoordsFile(t, "20,20\n20,20\n21,20\n80,80\n")

	for i := 0; i < 2; i++ {
		resp := callTool(t, s, "strike_optimize", map[string]interface{}{
			"path":   path,
			"radius": 2,
		})

		var report StrikeReport
		decodeResult(t, resp, &report)
		if report.Center != (targets.Point{X: 20, Y: 20}) || report.Count != 3 {
			t.Errorf("call %d: got %v with %d, want 20,20 with 3", i, report.Center, report.Count)
		}
	}

	if s.cache.Len() != 1 {
		t.Errorf("cache Len: got %d, want 1", s.cache.Len())
	}
}

func TestHandleToolsCall_GridSize(t *testing.T) {
	s := New(nil, nil)
	resp := callTool(t, s, "strike_optimize", map[string]interface{}{
		"points":    inline(targets.Point{X: 0, Y: 0}, targets.Point{X: 4, Y: 4}),
		"radius":    4,
		"grid_size": 5,
	})

	var report StrikeReport
	decodeResult(t, resp, &report)

	if report.GridSize != 5 {
		t.Errorf("GridSize: got %d, want 5", report.GridSize)
	}
	if report.Center != (targets.Point{X: 2, Y: 2}) || !report.FastPath {
		t.Errorf("got %v fast=%v, want 2,2 on the fast path", report.Center, report.FastPath)
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	corrupt := createCoordsFile(t, "1,1\n150,3\n")

	tests := []struct {
		name        string
		tool        string
		args        map[string]interface{}
		wantMessage string
	}{
		{
			"missing file",
			"strike_optimize",
			map[string]interface{}{"path": missing, "radius": 5},
			"Invalid target map",
		},
		{
			"corrupt file",
			"strike_optimize",
			map[string]interface{}{"path": corrupt, "radius": 5},
			"Invalid target map",
		},
		{
			"no targets",
			"strike_optimize",
			map[string]interface{}{"radius": 5},
			"Invalid target map",
		},
		{
			"inline point outside grid",
			"strike_coverage",
			map[string]interface{}{"points": inline(targets.Point{X: 100, Y: 0}), "x": 0, "y": 0, "radius": 1},
			"Invalid target map",
		},
		{
			"zero radius",
			"strike_optimize",
			map[string]interface{}{"points": inline(targets.Point{X: 1, Y: 1}), "radius": 0},
			"Tool execution failed",
		},
		{
			"negative grid size",
			"strike_optimize",
			map[string]interface{}{"points": inline(targets.Point{X: 1, Y: 1}), "radius": 1, "grid_size": -1},
			"Tool execution failed",
		},
		{
			"bad render scale",
			"strike_render",
			map[string]interface{}{"points": inline(targets.Point{X: 1, Y: 1}), "radius": 1, "scale": 64},
			"Tool execution failed",
		},
		{
			"negative count",
			"strike_generate",
			map[string]interface{}{"count": -1},
			"Tool execution failed",
		},
		{
			"huge count",
			"strike_generate",
			map[string]interface{}{"count": 1 << 60},
			"Tool execution failed",
		},
		{
			"huge generated grid",
			"strike_generate",
			map[string]interface{}{"count": 1, "grid_size": 1 << 40},
			"Tool execution failed",
		},
		{
			"huge grid size",
			"strike_optimize",
			map[string]interface{}{"points": inline(targets.Point{X: 1, Y: 1}), "radius": 1, "grid_size": 1 << 40},
			"Tool execution failed",
		},
		{
			"render canvas too large",
			"strike_render",
			map[string]interface{}{"points": inline(targets.Point{X: 1, Y: 1}), "radius": 1, "grid_size": 4096, "scale": 8},
			"Tool execution failed",
		},
		{
			"unknown tool",
			"strike_launch",
			map[string]interface{}{},
			"Tool execution failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, nil)
			resp := callTool(t, s, tt.tool, tt.args)

			if resp.Error == nil {
				t.Fatalf("expected error, got %+v", resp.Result)
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Code: got %d, want -32000", resp.Error.Code)
			}
			if resp.Error.Message != tt.wantMessage {
				t.Errorf("Message: got %q, want %q", resp.Error.Message, tt.wantMessage)
			}
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil, nil)
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"strike_optimize"`),
	})

	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602", resp.Error)
	}
}

func TestHandleToolsCall_StrikeCoverage(t *testing.T) {
	s := New(nil, nil)
	resp := callTool(t, s, "strike_coverage", map[string]interface{}{
		"points": inline(targets.Point{X: 0, Y: 0}, targets.Point{X: 3, Y: 4}, targets.Point{X: 10, Y: 10}),
		"x":      0,
		"y":      0,
		"radius": 5,
	})

	var report CoverageReport
	decodeResult(t, resp, &report)

	if report.Count != 2 || report.Total != 3 {
		t.Errorf("Count/Total: got %d/%d, want 2/3", report.Count, report.Total)
	}
	want := []targets.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}
	if len(report.Covered) != len(want) {
		t.Fatalf("Covered: got %v, want %v", report.Covered, want)
	}
	for i := range want {
		if report.Covered[i] != want[i] {
			t.Errorf("Covered[%d]: got %v, want %v", i, report.Covered[i], want[i])
		}
	}
}

func TestHandleToolsCall_StrikeGenerate(t *testing.T) {
	s := New(nil, nil)
	args := map[string]interface{}{"count": 5, "grid_size": 20, "seed": 7}

	var first, second GenerateReport
	decodeResult(t, callTool(t, s, "strike_generate", args), &first)
	decodeResult(t, callTool(t, s, "strike_generate", args), &second)

	if first.Count != 5 || len(first.Points) != 5 {
		t.Fatalf("got %d points, want 5", len(first.Points))
	}
	for i, p := range first.Points {
		if !p.InGrid(20) {
			t.Errorf("point %v outside grid", p)
		}
		if second.Points[i] != p {
			t.Errorf("point %d differs between seeded runs: %v vs %v", i, p, second.Points[i])
		}
	}
	if first.Seed != 7 {
		t.Errorf("Seed: got %d, want 7", first.Seed)
	}
}

func TestHandleToolsCall_StrikeGenerateDefaults(t *testing.T) {
	s := New(nil, nil)

	var report GenerateReport
	decodeResult(t, callTool(t, s, "strike_generate", map[string]interface{}{}), &report)

	if report.Count != 10 || report.GridSize != 100 {
		t.Errorf("got %d targets on %d grid, want 10 on 100", report.Count, report.GridSize)
	}
	if report.Seed == 0 {
		t.Error("expected a time-based seed")
	}
}

func TestHandleToolsCall_StrikeGenerateToFile(t *testing.T) {
	s := New(nil, nil)
	path := createCoordsFile(t, "1,1\n")

	// Prime the cache with the old contents.
	if _, err := s.cache.Load(path, 100); err != nil {
		t.Fatalf("cache load: %v", err)
	}

	var report GenerateReport
	decodeResult(t, callTool(t, s, "strike_generate", map[string]interface{}{
		"count":       3,
		"seed":        11,
		"output_path": path,
	}), &report)

	if s.cache.Len() != 0 {
		t.Errorf("cache Len: got %d, want 0 after regeneration", s.cache.Len())
	}

	points, err := targets.Load(path, 100)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i := range points {
		if points[i] != report.Points[i] {
			t.Errorf("point %d: file %v, report %v", i, points[i], report.Points[i])
		}
	}
}

func TestHandleToolsCall_StrikeRender(t *testing.T) {
	s := New(nil, nil)
	out := filepath.Join(t.TempDir(), "map.png")

	resp := callTool(t, s, "strike_render", map[string]interface{}{
		"points":       inline(targets.Point{X: 0, Y: 0}, targets.Point{X: 10, Y: 0}),
		"radius":       5,
		"scale":        2,
		"grid_spacing": 0,
		"output_path":  out,
	})

	var report RenderReport
	decodeResult(t, resp, &report)

	if report.MapResult == nil {
		t.Fatal("map missing from report")
	}
	if report.Width != 200 || report.Height != 200 {
		t.Errorf("size: got %dx%d, want 200x200", report.Width, report.Height)
	}
	if report.MimeType != "image/png" {
		t.Errorf("MimeType: got %s", report.MimeType)
	}
	if report.Center != (targets.Point{X: 5, Y: 0}) || report.Count != 2 {
		t.Errorf("got %v with %d, want 5,0 with 2", report.Center, report.Count)
	}

	data, err := base64.StdEncoding.DecodeString(report.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("image is not a PNG")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestHandleToolsCall_PanicBecomesError(t *testing.T) {
	// No cache, so loading a target file panics inside the tool.
	s := &Server{cfg: config.Default(), logger: zap.NewNop()}
	path := createCoordsFile(t, "1,1\n")

	resp := callTool(t, s, "strike_optimize", map[string]interface{}{"path": path, "radius": 1})

	if resp.Error == nil {
		t.Fatalf("expected error, got %+v", resp.Result)
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Code: got %d, want -32000", resp.Error.Code)
	}
	data, _ := resp.Error.Data.(string)
	if !strings.Contains(data, "panicked") {
		t.Errorf("Data: got %q, want panic report", data)
	}

	// The server keeps answering.
	if resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 2, Method: "ping"}); resp.Error != nil {
		t.Errorf("ping after panic: %+v", resp.Error)
	}
}
