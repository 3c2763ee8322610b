package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wutsk/labreserve/internal/domain"
)

type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ListSystems(ctx context.Context) ([]domain.OperatingSystem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperatingSystem), args.Error(1)
}

func TestCatalogHandler_list(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewCatalogHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/systems", nil)

	systems := []domain.OperatingSystem{{
		ID:   1,
		Code: "deb12",
		Name: "Debian 12",
		SubSystems: []domain.SubSystem{
			{ID: 1, Code: "net", Name: "Networking lab", OperatingSystemID: 1},
		},
	}}
	mockService.On("ListSystems", c.Request.Context()).Return(systems, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.OperatingSystem
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.Equal(t, "deb12", response[0].Code)
}
