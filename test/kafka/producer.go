// этот код не зависит от приложения и нужен только для ручной проверки
// приёма заказов через кафку и эндпоинта bought_together
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/asquebay/bought-together-service/internal/model"
)

// небольшой каталог, чтобы у заказов были пересечения
var catalog = []model.Product{
	{ID: "sample", Name: "Sample"},
	{ID: "aaa", Name: "Mascara"},
	{ID: "bbb", Name: "Lipstick"},
	{ID: "ccc", Name: "Eyeliner"},
	{ID: "ddd", Name: "Shampoo"},
	{ID: "eee", Name: "Conditioner"},
}

func main() {
	brokerAddress := flag.String("broker", "localhost:9092", "kafka broker address")
	topic := flag.String("topic", "orders", "kafka topic")
	count := flag.Int("n", 10, "number of orders to send")
	flag.Parse()

	writer := &kafka.Writer{
		Addr:     kafka.TCP(*brokerAddress),
		Topic:    *topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer writer.Close()

	messages := make([]kafka.Message, 0, *count)
	for i := 0; i < *count; i++ {
		value, err := json.Marshal(randomOrder())
		if err != nil {
			log.Fatalf("Failed to marshal order: %v", err)
		}
		messages = append(messages, kafka.Message{Value: value})
	}

	log.Printf("Sending %d orders to Kafka...", len(messages))
	if err := writer.WriteMessages(context.Background(), messages...); err != nil {
		log.Fatalf("Failed to write messages: %v", err)
	}
	fmt.Println("Messages sent successfully!")
}

func randomOrder() model.Order {
	n := 1 + rand.IntN(len(catalog))
	perm := rand.Perm(len(catalog))[:n]

	items := make([]model.Item, 0, n)
	for _, idx := range perm {
		items = append(items, model.Item{Product: catalog[idx], Quantity: 1 + rand.IntN(3)})
	}

	return model.Order{ID: uuid.NewString(), Items: items}
}
