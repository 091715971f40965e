package memory

import (
	"errors"
	"sync"

	"github.com/asquebay/bought-together-service/internal/model"
)

var (
	// ErrEmptyItems возвращается при попытке сохранить заказ без товаров
	ErrEmptyItems = errors.New("order has no items")
	// ErrDuplicateID возвращается, если заказ с таким id уже сохранён
	ErrDuplicateID = errors.New("order already exists")
)

// OrderStore — потокобезопасное in-memory хранилище заказов
// все операции, включая чтение, выполняются под одним мьютексом
type OrderStore struct {
	mu sync.Mutex
	// orders хранит заказы в порядке вставки, index — позиция заказа по его id
	orders []model.Order
	index  map[string]int
}

// NewOrderStore создаёт пустое хранилище
func NewOrderStore() *OrderStore {
	return &OrderStore{
		index: make(map[string]int),
	}
}

// Submit добавляет заказ в хранилище
// проверка и вставка выполняются атомарно, при ошибке хранилище не меняется
func (s *OrderStore) Submit(order model.Order) error {
	if len(order.Items) == 0 {
		return ErrEmptyItems
	}

	// копируем до захвата блокировки, чтобы не держать мьютекс дольше нужного
	order = order.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[order.ID]; ok {
		return ErrDuplicateID
	}

	s.index[order.ID] = len(s.orders)
	s.orders = append(s.orders, order)
	return nil
}

// List возвращает снимок всех заказов в порядке вставки
// вызывающий получает копии и не видит последующих изменений
func (s *OrderStore) List() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]model.Order, len(s.orders))
	for i, order := range s.orders {
		snapshot[i] = order.Clone()
	}
	return snapshot
}

// Reset удаляет все заказы
func (s *OrderStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = nil
	s.index = make(map[string]int)
}

// Len возвращает количество сохранённых заказов
func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.orders)
}
