package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cubahno/schemock/internal/types"
	"github.com/cubahno/schemock/pkg/mocker"
	"github.com/cubahno/schemock/pkg/schema"
	"github.com/labstack/echo/v4"
)

var ErrInvalidRequest = errors.New("invalid request")

// MockSettings overrides generation settings for one request.
type MockSettings struct {
	NullChance      *float64        `json:"nullChance"`
	UndefinedChance *float64        `json:"undefinedChance"`
	DefaultChance   *float64        `json:"defaultChance"`
	Lengths         *mocker.Lengths `json:"lengths"`
}

// MockRequest is the body of POST /mock.
// Schema is an OpenAPI schema object. Count defaults to 1.
// When any override list is given, the request's lists replace the configured ones.
// Supply replaces the configured overlay.
type MockRequest struct {
	Schema    json.RawMessage   `json:"schema"`
	Count     *int              `json:"count"`
	Seed      *int64            `json:"seed"`
	Config    *MockSettings     `json:"config"`
	Nulls     []string          `json:"nulls"`
	NotNulls  []string          `json:"notNulls"`
	Undefined []string          `json:"undefined"`
	Defined   []string          `json:"defined"`
	Supply    *types.OrderedMap `json:"supply"`
	Validate  bool              `json:"validate"`
}

func (r *MockRequest) hasOverrides() bool {
	return r.Nulls != nil || r.NotNulls != nil || r.Undefined != nil || r.Defined != nil
}

// mockHandler generates values for schemas posted by clients.
// A new Mocker is built for every request.
type mockHandler struct {
	router *Router
}

func CreateMockRoutes(router *Router) {
	handler := &mockHandler{
		router: router,
	}

	router.POST("/mock", handler.mock)
	router.GET("/generators", handler.generators)
}

func (h *mockHandler) mock(c echo.Context) error {
	req := &MockRequest{}
	if err := c.Bind(req); err != nil {
		return h.fail(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}

	m, count, err := h.newMocker(req)
	if err != nil {
		return h.fail(c, err)
	}

	data := make([]any, 0, count)
	for i := 0; i < count; i++ {
		value, err := m.Mock()
		if err != nil {
			return h.fail(c, err)
		}

		if req.Validate {
			if err := m.Schema().Validate(value); err != nil {
				return c.JSON(http.StatusUnprocessableEntity, &ErrorResponse{
					Message: err.Error(),
					Data:    value,
				})
			}
		}
		data = append(data, value)
	}

	return c.JSON(http.StatusOK, &MockResponse{Data: data})
}

func (h *mockHandler) generators(c echo.Context) error {
	return c.JSON(http.StatusOK, &GeneratorsResponse{
		Generators: mocker.DefaultGenerators().Names(),
	})
}

func (h *mockHandler) newMocker(req *MockRequest) (*mocker.Mocker, int, error) {
	if len(req.Schema) == 0 {
		return nil, 0, fmt.Errorf("%w: schema is required", ErrInvalidRequest)
	}

	node, err := schema.Parse(req.Schema)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	cfg := h.router.config

	count := 1
	if req.Count != nil {
		count = *req.Count
	}
	if count < 0 {
		return nil, 0, fmt.Errorf("%w: %d", mocker.ErrInvalidCount, count)
	}
	if count > cfg.App.MaxCount {
		return nil, 0, fmt.Errorf("%w: count %d exceeds maximum %d", ErrInvalidRequest, count, cfg.App.MaxCount)
	}

	mockCfg, err := cfg.ToMockerConfig()
	if err != nil {
		return nil, 0, err
	}
	mockCfg.Logger = h.router.logger
	if req.Seed != nil {
		mockCfg = mockCfg.WithSeed(*req.Seed)
	}
	if s := req.Config; s != nil {
		if s.NullChance != nil {
			mockCfg.NullChance = *s.NullChance
		}
		if s.UndefinedChance != nil {
			mockCfg.UndefinedChance = *s.UndefinedChance
		}
		if s.DefaultChance != nil {
			mockCfg.DefaultChance = *s.DefaultChance
		}
		if s.Lengths != nil {
			mockCfg.Lengths = *s.Lengths
		}
	}

	m, err := mocker.New(node, mockCfg)
	if err != nil {
		return nil, 0, err
	}

	overrides := cfg.Overrides
	if req.hasOverrides() {
		overrides = mocker.Overrides{
			Nulls:     req.Nulls,
			NotNulls:  req.NotNulls,
			Undefined: req.Undefined,
			Defined:   req.Defined,
		}
	}
	if _, err := m.Apply(overrides); err != nil {
		return nil, 0, err
	}

	switch {
	case req.Supply != nil:
		m.Supply(req.Supply)
	case len(cfg.Supply) > 0:
		m.Supply(cfg.Supply)
	}

	return m, count, nil
}

func (h *mockHandler) fail(c echo.Context, err error) error {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.router.logger.Error("mock generation failed", "error", err)
	}
	return c.JSON(status, &ErrorResponse{
		Message: err.Error(),
	})
}
