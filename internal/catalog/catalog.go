package catalog

import (
	"time"

	"studenthub/internal/cart"
)

// Project платный электронный микропроект из каталога
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	GroupNumber int       `json:"group_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// CartItem позиция корзины для проекта, цена передается без изменений
func (p *Project) CartItem() cart.CartItem {
	return cart.CartItem{
		ID:    p.ID,
		Name:  p.Title,
		Price: p.Price,
	}
}

//go:generate mockgen -source=catalog.go -destination=../mocks/mock_project_repo.go -package=mocks
type ProjectRepo interface {
	GetByID(id string) (*Project, error)
	List() ([]Project, error)
}
