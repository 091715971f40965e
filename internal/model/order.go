package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidOrder возвращается, если заказ не прошёл проверку тегов validate
var ErrInvalidOrder = errors.New("invalid order")

// Product описывает товар внутри строки заказа
type Product struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// Item представляет одну строку заказа: товар и его количество
// количество хранится, но в подсчёте "покупают вместе" не участвует
type Item struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity" validate:"gt=0,lte=65535"`
}

// Order представляет заказ целиком
// после приёма заказ не меняется, хранилище отдаёт только копии
type Order struct {
	ID    string `json:"id" validate:"required"`
	Items []Item `json:"items" validate:"required,gt=0,dive"`
}

var validate = validator.New()

// Validate проверяет корректность структуры Order на основе тегов validate
func (o *Order) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOrder, err.Error())
	}
	return nil
}

// Clone возвращает глубокую копию заказа
func (o Order) Clone() Order {
	items := make([]Item, len(o.Items))
	copy(items, o.Items)
	return Order{ID: o.ID, Items: items}
}

// HasProduct сообщает, есть ли в заказе хотя бы одна строка с указанным товаром
func (o Order) HasProduct(productID string) bool {
	for _, item := range o.Items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}
