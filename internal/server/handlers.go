package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/strike-planner/internal/optimizer"
	"github.com/ironsheep/strike-planner/internal/render"
	"github.com/ironsheep/strike-planner/internal/targets"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "strike_optimize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	callID := uuid.NewString()
	logger := s.logger.With(zap.String("call_id", callID), zap.String("tool", params.Name))
	start := time.Now()

	result, err := s.runTool(params.Name, params.Arguments)
	if err != nil {
		logger.Warn("tool call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		if isTargetError(err) {
			return s.errorResponse(req.ID, -32000, "Invalid target map", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	logger.Info("tool call completed", zap.Duration("elapsed", time.Since(start)))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// runTool executes a tool and reports a panic as an error.
func (s *Server) runTool(name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panicked", zap.String("tool", name), zap.Any("panic", r))
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()
	return s.executeTool(name, args)
}

func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "strike_optimize":
		return s.handleStrikeOptimize(args)
	case "strike_coverage":
		return s.handleStrikeCoverage(args)
	case "strike_generate":
		return s.handleStrikeGenerate(args)
	case "strike_render":
		return s.handleStrikeRender(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// targetArgs selects a target map from a file or an inline list.
type targetArgs struct {
	Path     string          `json:"path"`
	Points   []targets.Point `json:"points"`
	GridSize int             `json:"grid_size"`
}

func (a *targetArgs) gridSize(fallback int) (int, error) {
	if a.GridSize == 0 {
		return fallback, nil
	}
	if a.GridSize < 0 || a.GridSize > targets.MaxGridSize {
		return 0, fmt.Errorf("grid size %d outside 1-%d", a.GridSize, targets.MaxGridSize)
	}
	return a.GridSize, nil
}

// loadTargets returns the target map selected by a. Files go through the
// cache; inline points must all lie inside the grid.
func (s *Server) loadTargets(a *targetArgs) ([]targets.Point, int, error) {
	g, err := a.gridSize(s.cfg.GridSize)
	if err != nil {
		return nil, 0, err
	}

	if a.Path != "" {
		points, err := s.cache.Load(a.Path, g)
		if err != nil {
			return nil, 0, err
		}
		return points, g, nil
	}

	if len(a.Points) == 0 {
		return nil, 0, fmt.Errorf("%w: give either path or points", targets.ErrNoTargets)
	}
	for _, p := range a.Points {
		if !p.InGrid(g) {
			return nil, 0, fmt.Errorf("%w: point %s outside %dx%d grid", targets.ErrNoTargets, p, g, g)
		}
	}
	return a.Points, g, nil
}

func checkRadius(r float64) error {
	if !(r > 0) || math.IsInf(r, 0) {
		return fmt.Errorf("%w: got %v", optimizer.ErrInvalidRadius, r)
	}
	return nil
}

func (s *Server) optimize(points []targets.Point, gridSize int, radius float64) (optimizer.Result, error) {
	if err := checkRadius(radius); err != nil {
		return optimizer.Result{}, err
	}
	return optimizer.New(gridSize, optimizer.WithLogger(s.logger)).Optimize(points, radius)
}

// === Strike Handlers ===

type strikeOptimizeArgs struct {
	targetArgs
	Radius float64 `json:"radius"`
}

// StrikeReport is the result of strike_optimize.
type StrikeReport struct {
	optimizer.Result
	Radius            float64         `json:"radius"`
	GridSize          int             `json:"grid_size"`
	EfficiencyPercent float64         `json:"efficiency_percent"`
	Covered           []targets.Point `json:"covered"`
	Report            string          `json:"report"`
}

func (s *Server) handleStrikeOptimize(args json.RawMessage) (interface{}, error) {
	var a strikeOptimizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	points, g, err := s.loadTargets(&a.targetArgs)
	if err != nil {
		return nil, err
	}
	res, err := s.optimize(points, g, a.Radius)
	if err != nil {
		return nil, err
	}

	return &StrikeReport{
		Result:            res,
		Radius:            a.Radius,
		GridSize:          g,
		EfficiencyPercent: res.Efficiency(),
		Covered:           optimizer.CoveredPoints(points, res.Center, a.Radius),
		Report:            res.String(),
	}, nil
}

type strikeCoverageArgs struct {
	targetArgs
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Radius float64 `json:"radius"`
}

// CoverageReport is the result of strike_coverage.
type CoverageReport struct {
	Center  targets.Point   `json:"center"`
	Radius  float64         `json:"radius"`
	Count   int             `json:"count"`
	Total   int             `json:"total"`
	Covered []targets.Point `json:"covered"`
}

func (s *Server) handleStrikeCoverage(args json.RawMessage) (interface{}, error) {
	var a strikeCoverageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := checkRadius(a.Radius); err != nil {
		return nil, err
	}
	points, _, err := s.loadTargets(&a.targetArgs)
	if err != nil {
		return nil, err
	}

	center := targets.Point{X: a.X, Y: a.Y}
	covered := optimizer.CoveredPoints(points, center, a.Radius)
	return &CoverageReport{
		Center:  center,
		Radius:  a.Radius,
		Count:   len(covered),
		Total:   len(points),
		Covered: covered,
	}, nil
}

type strikeGenerateArgs struct {
	Count      *int   `json:"count"`
	GridSize   int    `json:"grid_size"`
	Seed       uint64 `json:"seed"`
	OutputPath string `json:"output_path"`
}

// GenerateReport is the result of strike_generate.
type GenerateReport struct {
	Count    int             `json:"count"`
	GridSize int             `json:"grid_size"`
	Seed     uint64          `json:"seed"`
	Path     string          `json:"path,omitempty"`
	Points   []targets.Point `json:"points"`
}

func (s *Server) handleStrikeGenerate(args json.RawMessage) (interface{}, error) {
	var a strikeGenerateArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	count := 10
	if a.Count != nil {
		count = *a.Count
	}
	g := a.GridSize
	if g == 0 {
		g = s.cfg.GridSize
	}
	seed := a.Seed
	if seed == 0 {
		seed = s.cfg.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	points, err := targets.Generate(targets.NewSource(seed), count, g)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := targets.WriteFile(a.OutputPath, points); err != nil {
			return nil, err
		}
		// The file may have been loaded before with different contents.
		s.cache.Evict(a.OutputPath)
	}

	return &GenerateReport{
		Count:    count,
		GridSize: g,
		Seed:     seed,
		Path:     a.OutputPath,
		Points:   points,
	}, nil
}

type strikeRenderArgs struct {
	targetArgs
	Radius      float64 `json:"radius"`
	Scale       int     `json:"scale"`
	GridSpacing *int    `json:"grid_spacing"`
	Caption     *bool   `json:"caption"`
	OutputPath  string  `json:"output_path"`
}

// RenderReport is the result of strike_render.
type RenderReport struct {
	*render.MapResult
	Center targets.Point `json:"center"`
	Count  int           `json:"count"`
	Total  int           `json:"total"`
	Path   string        `json:"path,omitempty"`
}

func (s *Server) handleStrikeRender(args json.RawMessage) (interface{}, error) {
	var a strikeRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	points, g, err := s.loadTargets(&a.targetArgs)
	if err != nil {
		return nil, err
	}
	res, err := s.optimize(points, g, a.Radius)
	if err != nil {
		return nil, err
	}

	opts := render.DefaultOptions(g)
	opts.Scale = s.cfg.RenderScale
	if a.Scale != 0 {
		opts.Scale = a.Scale
	}
	opts.GridSpacing = s.cfg.GridSpacing
	if a.GridSpacing != nil {
		opts.GridSpacing = *a.GridSpacing
	}
	opts.ShowCoordinates = opts.GridSpacing > 0
	if a.Caption == nil || *a.Caption {
		opts.Caption = res.String()
	}

	img, err := render.StrikeMap(points, res, a.Radius, opts)
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := render.Save(a.OutputPath, img); err != nil {
			return nil, err
		}
	}

	encoded, err := render.Encode(img, opts.Scale)
	if err != nil {
		return nil, err
	}
	return &RenderReport{
		MapResult: encoded,
		Center:    res.Center,
		Count:     res.Count,
		Total:     res.Total,
		Path:      a.OutputPath,
	}, nil
}

// isTargetError reports whether err is a problem with the target map itself
// rather than with the request.
func isTargetError(err error) bool {
	return errors.Is(err, targets.ErrNoTargets) || errors.Is(err, targets.ErrUnreadable)
}
