package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"studenthub/internal/cart"
	"studenthub/internal/catalog"
	"studenthub/internal/quotation"
	myErr "studenthub/internal/types/errors"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ShoppingCartHandler ручки для корзин сессий
type ShoppingCartHandler struct {
	Logger   *zap.SugaredLogger
	Carts    *cart.Registry
	Projects catalog.ProjectRepo
	// Now подменяется в тестах сметы
	Now func() time.Time
}

// NewShoppingCartHandler конструктор
func NewShoppingCartHandler(
	log *zap.SugaredLogger,
	carts *cart.Registry,
	projects catalog.ProjectRepo,
) *ShoppingCartHandler {
	return &ShoppingCartHandler{
		Logger:   log,
		Carts:    carts,
		Projects: projects,
		Now:      time.Now,
	}
}

// DiscountForm тело PUT /cart/{sessionID}/discount
type DiscountForm struct {
	ApplyDiscount *bool `json:"apply_discount"`
}

// GetCart - GET /cart/{sessionID}
func (h *ShoppingCartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var sum cart.Summary
	h.Carts.Do(sessionID, func(s *cart.Store) {
		sum = s.Summary()
	})

	h.writeSummary(w, http.StatusOK, sum)
}

// AddToShoppingCart - POST /cart/{sessionID}/item/{projectID}
func (h *ShoppingCartHandler) AddToShoppingCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	projectID := mux.Vars(r)["projectID"]

	project, err := h.Projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
	// корзина молча отбросит такую позицию, клиенту сообщаем явно
	if project.Price < 0 {
		h.Logger.Warnf("project %s has negative price %d", projectID, project.Price)
		myErr.SendErrorTo(w, myErr.ErrNegativePrice, http.StatusUnprocessableEntity, h.Logger)
		return
	}

	var sum cart.Summary
	h.Carts.Do(sessionID, func(s *cart.Store) {
		s.AddItem(project.CartItem())
		sum = s.Summary()
	})

	h.Logger.Infof("added project %s to session %s shopping cart", projectID, sessionID)
	h.writeSummary(w, http.StatusCreated, sum)
}

// DeleteFromShoppingCart - DELETE /cart/{sessionID}/item/{itemID}
// Удаление отсутствующей позиции не ошибка
func (h *ShoppingCartHandler) DeleteFromShoppingCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	itemID := mux.Vars(r)["itemID"]

	var sum cart.Summary
	h.Carts.Do(sessionID, func(s *cart.Store) {
		s.RemoveItem(itemID)
		sum = s.Summary()
	})

	h.Logger.Infof("deleted item %s from session %s shopping cart", itemID, sessionID)
	h.writeSummary(w, http.StatusOK, sum)
}

// ClearShoppingCart - DELETE /cart/{sessionID}
func (h *ShoppingCartHandler) ClearShoppingCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var sum cart.Summary
	h.Carts.Do(sessionID, func(s *cart.Store) {
		s.Clear()
		sum = s.Summary()
	})

	h.writeSummary(w, http.StatusOK, sum)
}

// SetDiscount - PUT /cart/{sessionID}/discount
// Принимает {"apply_discount": true}
func (h *ShoppingCartHandler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var form DiscountForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil || form.ApplyDiscount == nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	var sum cart.Summary
	h.Carts.Do(sessionID, func(s *cart.Store) {
		s.SetApplyDiscount(*form.ApplyDiscount)
		sum = s.Summary()
	})

	h.writeSummary(w, http.StatusOK, sum)
}

// GetQuotation - GET /cart/{sessionID}/quotation
// Отдает смету текстовым файлом
func (h *ShoppingCartHandler) GetQuotation(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var sum cart.Summary
	h.Carts.Do(sessionID, func(s *cart.Store) {
		sum = s.Summary()
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+quotation.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(quotation.Render(sum, h.Now()))); err != nil {
		h.Logger.Warnw("error writing quotation", "err", err)
	}
}

func (h *ShoppingCartHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := mux.Vars(r)["sessionID"]
	if _, err := uuid.Parse(sessionID); err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return "", false
	}

	return sessionID, true
}

func (h *ShoppingCartHandler) writeSummary(w http.ResponseWriter, status int, sum cart.Summary) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(sum); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}
