package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studenthub/internal/cart"
	"studenthub/internal/catalog"
	"studenthub/internal/mocks"
	"studenthub/internal/storage"
	myErr "studenthub/internal/types/errors"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func setup(t *testing.T) (*ShoppingCartHandler, *mocks.MockProjectRepo, *storage.MemoryStorage) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := zaptest.NewLogger(t).Sugar()
	mem := storage.NewMemoryStorage()
	mockProjects := mocks.NewMockProjectRepo(ctrl)
	handler := NewShoppingCartHandler(logger, cart.NewRegistry(mem, "cart:", 0, logger), mockProjects)

	return handler, mockProjects, mem
}

func decodeSummary(t *testing.T, w *httptest.ResponseRecorder) cart.Summary {
	t.Helper()

	var sum cart.Summary
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&sum))

	return sum
}

var robot = &catalog.Project{ID: "p1", Title: "Line follower robot", Price: 1500}

func TestShoppingCartHandler_AddToShoppingCart(t *testing.T) {
	validSessionID := uuid.New().String()

	tests := []struct {
		name           string
		sessionID      string
		projectID      string
		mockBehavior   func(m *mocks.MockProjectRepo)
		expectedStatus int
		expectedCount  int
	}{
		{
			name:      "success",
			sessionID: validSessionID,
			projectID: "p1",
			mockBehavior: func(m *mocks.MockProjectRepo) {
				m.EXPECT().GetByID("p1").Return(robot, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedCount:  1,
		},
		{
			name:           "bad sessionID",
			sessionID:      "invalid",
			projectID:      "p1",
			mockBehavior:   func(m *mocks.MockProjectRepo) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "unknown project",
			sessionID: validSessionID,
			projectID: "p404",
			mockBehavior: func(m *mocks.MockProjectRepo) {
				m.EXPECT().GetByID("p404").Return(nil, myErr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:      "catalog error",
			sessionID: validSessionID,
			projectID: "p1",
			mockBehavior: func(m *mocks.MockProjectRepo) {
				m.EXPECT().GetByID("p1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:      "negative price",
			sessionID: validSessionID,
			projectID: "p9",
			mockBehavior: func(m *mocks.MockProjectRepo) {
				m.EXPECT().GetByID("p9").Return(&catalog.Project{ID: "p9", Title: "Broken", Price: -1}, nil)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, mockProjects, mem := setup(t)
			tc.mockBehavior(mockProjects)

			url := fmt.Sprintf("/cart/%s/item/%s", tc.sessionID, tc.projectID)
			req := httptest.NewRequest(http.MethodPost, url, nil)
			req = mux.SetURLVars(req, map[string]string{
				"sessionID": tc.sessionID,
				"projectID": tc.projectID,
			})
			w := httptest.NewRecorder()

			handler.AddToShoppingCart(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusCreated {
				sum := decodeSummary(t, w)
				assert.Equal(t, tc.expectedCount, sum.Count)
				assert.Equal(t, int64(1500), sum.Total)
			}
			if tc.expectedStatus == http.StatusUnprocessableEntity {
				var resp myErr.ErrorServer
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, myErr.ErrNegativePrice.Error(), resp.Message)

				_, err := mem.Get("cart:" + tc.sessionID)
				assert.ErrorIs(t, err, myErr.ErrNotFound)
			}
		})
	}
}

func TestShoppingCartHandler_AddTwiceKeepsOneEntry(t *testing.T) {
	handler, mockProjects, mem := setup(t)
	sessionID := uuid.New().String()

	mockProjects.EXPECT().GetByID("p1").Return(robot, nil).Times(2)

	for i := 0; i < 2; i++ {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{
			"sessionID": sessionID,
			"projectID": "p1",
		})
		w := httptest.NewRecorder()
		handler.AddToShoppingCart(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, decodeSummary(t, w).Count)
	}

	raw, err := mem.Get("cart:" + sessionID)
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1","name":"Line follower robot","price":1500}]`, string(raw))
}

func TestShoppingCartHandler_DeleteAndClear(t *testing.T) {
	handler, _, _ := setup(t)
	sessionID := uuid.New().String()

	handler.Carts.Do(sessionID, func(s *cart.Store) {
		s.AddItem(cart.CartItem{ID: "p1", Name: "Robot", Price: 1500})
		s.AddItem(cart.CartItem{ID: "p2", Name: "Meter", Price: 800})
	})

	// удаление отсутствующей позиции ничего не ломает
	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{
		"sessionID": sessionID,
		"itemID":    "missing",
	})
	w := httptest.NewRecorder()
	handler.DeleteFromShoppingCart(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodeSummary(t, w).Count)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{
		"sessionID": sessionID,
		"itemID":    "p1",
	})
	w = httptest.NewRecorder()
	handler.DeleteFromShoppingCart(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	sum := decodeSummary(t, w)
	assert.Equal(t, []cart.CartItem{{ID: "p2", Name: "Meter", Price: 800}}, sum.Items)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{
		"sessionID": sessionID,
	})
	w = httptest.NewRecorder()
	handler.ClearShoppingCart(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"items":[],"count":0,"subtotal":0,"discount":0,"total":0,"apply_discount":false}`,
		w.Body.String(),
	)
}

func TestShoppingCartHandler_SetDiscount(t *testing.T) {
	sessionID := uuid.New().String()

	tests := []struct {
		name             string
		body             string
		expectedStatus   int
		expectedDiscount int64
	}{
		{
			name:             "enable",
			body:             `{"apply_discount": true}`,
			expectedStatus:   http.StatusOK,
			expectedDiscount: 10,
		},
		{
			name:           "missing flag",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			body:           `{invalid-json}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, _, _ := setup(t)
			handler.Carts.Do(sessionID, func(s *cart.Store) {
				s.AddItem(cart.CartItem{ID: "a", Name: "a", Price: 99})
			})

			req := mux.SetURLVars(
				httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tc.body)),
				map[string]string{"sessionID": sessionID},
			)
			w := httptest.NewRecorder()

			handler.SetDiscount(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusOK {
				sum := decodeSummary(t, w)
				assert.Equal(t, tc.expectedDiscount, sum.Discount)
				assert.Equal(t, int64(89), sum.Total)
			}
		})
	}
}

func TestShoppingCartHandler_GetCart(t *testing.T) {
	handler, _, mem := setup(t)
	sessionID := uuid.New().String()

	// корзина восстанавливается из хранилища при первом обращении
	assert.NoError(t, mem.Set("cart:"+sessionID, []byte(`[{"id":"p9","name":"Sensor","price":350}]`)))

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{
		"sessionID": sessionID,
	})
	w := httptest.NewRecorder()
	handler.GetCart(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	sum := decodeSummary(t, w)
	assert.Equal(t, int64(350), sum.Subtotal)
	assert.Equal(t, "p9", sum.Items[0].ID)
}

func TestShoppingCartHandler_GetQuotation(t *testing.T) {
	handler, _, _ := setup(t)
	handler.Now = func() time.Time { return time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC) }
	sessionID := uuid.New().String()

	handler.Carts.Do(sessionID, func(s *cart.Store) {
		s.AddItem(cart.CartItem{ID: "p1", Name: "Robot", Price: 1500})
		s.SetApplyDiscount(true)
	})

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{
		"sessionID": sessionID,
	})
	w := httptest.NewRecorder()
	handler.GetQuotation(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "project-quotation.txt")
	body := w.Body.String()
	assert.Contains(t, body, "Date: 05/09/2024")
	assert.Contains(t, body, "- Robot: ₹1500")
	assert.Contains(t, body, "Discount (10%): -₹150")
	assert.Contains(t, body, "Total: ₹1350")
}
