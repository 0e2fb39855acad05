package mediate_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bjaus/mediate"
)

// CreateOrder is a request expecting an OrderReceipt response.
type CreateOrder struct {
	SKU      string
	Quantity int
}

// OrderReceipt is the response to a CreateOrder request.
type OrderReceipt struct {
	OrderID string
}

// CreateOrderHandler handles CreateOrder requests.
type CreateOrderHandler struct{}

func (h *CreateOrderHandler) Handle(ctx context.Context, req CreateOrder) (OrderReceipt, error) {
	fmt.Printf("Creating order: %d x %s\n", req.Quantity, req.SKU)
	return OrderReceipt{OrderID: "ord-42"}, nil
}

// OrderPlaced is broadcast after an order is created.
type OrderPlaced struct {
	OrderID string
}

// ReceiptMailer handles OrderPlaced notifications.
type ReceiptMailer struct{}

func (h *ReceiptMailer) Handle(ctx context.Context, n OrderPlaced) error {
	fmt.Printf("Mailing receipt for %s\n", n.OrderID)
	return nil
}

func Example() {
	// Create mediator with hooks
	m := mediate.New(
		mediate.WithOnFailure(func(ctx context.Context, msgType string, err error, d time.Duration) {
			log.Printf("%s failed: %v (%v)", msgType, err, d)
		}),
	)

	// Register handlers
	mediate.RegisterRequestHandler(m, &CreateOrderHandler{})
	mediate.RegisterNotificationHandler(m, &ReceiptMailer{})

	// Send a request, then broadcast the outcome
	receipt, err := mediate.Send[OrderReceipt](context.Background(), m, CreateOrder{SKU: "tea", Quantity: 2})
	if err != nil {
		log.Fatal(err)
	}
	if err := m.Publish(context.Background(), OrderPlaced{OrderID: receipt.OrderID}); err != nil {
		log.Fatal(err)
	}

	// Output:
	// Creating order: 2 x tea
	// Mailing receipt for ord-42
}

func Example_handlerFunc() {
	m := mediate.New()

	// Register with a function instead of a struct
	mediate.RegisterRequestHandlerFunc(m, func(ctx context.Context, req struct{ Name string }) (string, error) {
		return "Hello, " + req.Name, nil
	})

	greeting, _ := mediate.Send[string](context.Background(), m, struct{ Name string }{Name: "World"})
	fmt.Println(greeting)

	// Output:
	// Hello, World
}

func Example_pipelineBehavior() {
	m := mediate.New()

	mediate.RegisterRequestHandler(m, &CreateOrderHandler{})

	// First registered behavior wraps outermost
	mediate.RegisterPipelineBehaviorFunc(m, func(ctx context.Context, req any, next mediate.Next[any]) (any, error) {
		fmt.Println("outer: before")
		res, err := next(ctx)
		fmt.Println("outer: after")
		return res, err
	})
	mediate.RegisterPipelineBehaviorFunc(m, func(ctx context.Context, req any, next mediate.Next[any]) (any, error) {
		fmt.Println("inner: before")
		res, err := next(ctx)
		fmt.Println("inner: after")
		return res, err
	})

	_, _ = m.Send(context.Background(), CreateOrder{SKU: "tea", Quantity: 1})

	// Output:
	// outer: before
	// inner: before
	// Creating order: 1 x tea
	// inner: after
	// outer: after
}

func Example_strictNotifications() {
	m := mediate.New(mediate.WithStrictNotifications())

	err := m.Publish(context.Background(), OrderPlaced{OrderID: "ord-7"})
	fmt.Println("Error:", err)

	// Output:
	// Error: no notification handler registered for mediate_test.OrderPlaced
}

func Example_correlation() {
	m := mediate.New()

	mediate.RegisterPipelineBehavior[any, any](m, mediate.NewCorrelationBehavior())
	mediate.RegisterRequestHandlerFunc(m, func(ctx context.Context, req CreateOrder) (OrderReceipt, error) {
		fmt.Println("Has correlation ID:", mediate.CorrelationID(ctx) != "")
		return OrderReceipt{}, nil
	})

	_, _ = m.Send(context.Background(), CreateOrder{})

	// Output:
	// Has correlation ID: true
}
