package service

import (
	"github.com/asquebay/bought-together-service/internal/model"
)

// OrderStore определяет контракт для in-memory хранилища заказов
type OrderStore interface {
	Submit(order model.Order) error
	List() []model.Order
	Reset()
	Len() int
}
