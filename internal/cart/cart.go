package cart

// CartItem позиция корзины: один платный проект из каталога
type CartItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Summary снимок корзины со всеми производными суммами
type Summary struct {
	Items         []CartItem `json:"items"`
	Count         int        `json:"count"`
	Subtotal      int64      `json:"subtotal"`
	Discount      int64      `json:"discount"`
	Total         int64      `json:"total"`
	ApplyDiscount bool       `json:"apply_discount"`
}

// Op тип изменения корзины
type Op string

const (
	OpAdd      Op = "add"
	OpRemove   Op = "remove"
	OpClear    Op = "clear"
	OpDiscount Op = "discount"
)

// Change уведомление подписчикам об изменении корзины.
// ItemID заполнен только для OpAdd и OpRemove
type Change struct {
	Op      Op
	ItemID  string
	Summary Summary
}

// Subscriber получает уведомления синхронно, после записи в хранилище
type Subscriber func(change Change)

// Storage узкий интерфейс key-value хранилища для снимков корзины.
// Get возвращает errors.ErrNotFound, если ключа нет
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
