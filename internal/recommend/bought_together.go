// Package recommend считает товары, которые чаще всего покупают вместе с заданным.
// Функции пакета чистые: они работают со снимком заказов и не хранят состояния.
package recommend

import (
	"sort"

	"github.com/asquebay/bought-together-service/internal/model"
)

// MaxResults — максимальное количество товаров в ответе BoughtTogether
const MaxResults = 10

// Score — товар и количество строк, в которых он встретился рядом с целевым
type Score struct {
	ProductID string
	Count     int
}

// Rank возвращает полный отсортированный список товаров, встречавшихся в одних
// заказах с productID, без самого productID
//
// счётчик растёт на каждую строку заказа, а не на каждый уникальный товар,
// количество (Quantity) не учитывается
// при равных счётчиках сохраняется порядок первого появления товара
func Rank(orders []model.Order, productID string) []Score {
	counts := make(map[string]int)
	// seen хранит порядок первого появления, он же вторичный ключ сортировки
	var seen []string

	for _, order := range orders {
		if !order.HasProduct(productID) {
			continue
		}
		for _, item := range order.Items {
			id := item.Product.ID
			if _, ok := counts[id]; !ok {
				seen = append(seen, id)
			}
			counts[id]++
		}
	}

	scores := make([]Score, 0, len(seen))
	for _, id := range seen {
		// товар никогда не рекомендуется сам к себе
		if id == productID {
			continue
		}
		scores = append(scores, Score{ProductID: id, Count: counts[id]})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Count > scores[j].Count
	})

	return scores
}

// BoughtTogether возвращает до MaxResults id товаров, которые чаще всего
// покупают вместе с productID, по убыванию частоты
// для неизвестного товара возвращается пустой срез, а не ошибка
func BoughtTogether(orders []model.Order, productID string) []string {
	scores := Rank(orders, productID)
	if len(scores) > MaxResults {
		scores = scores[:MaxResults]
	}

	ids := make([]string, len(scores))
	for i, s := range scores {
		ids[i] = s.ProductID
	}
	return ids
}
