// Package fixtures builds small but complete models shared by tests across
// packages.
package fixtures

import (
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/entities"
	"sketchddd/domain/core/valueobjects"
)

// Commerce builds a valid two-context model: an ordering context with every
// kind of declaration and a shipping context fed through a customer/supplier
// map.
func Commerce() *aggregates.Model {
	model, err := aggregates.NewModel("Commerce")
	if err != nil {
		panic(err)
	}
	model.SetDescription("ordering and fulfilment")

	orders := model.AddContext("Orders")
	customer := orders.AddEntityWithDescription("Customer", "a person who buys")
	order := orders.AddEntity("Order")
	money := orders.AddValueObject("Money")
	lineItem := orders.AddValueObjectWithComponents("LineItem", []valueobjects.ObjectID{money})
	orders.AddEnum("OrderStatus", []string{"Pending", "Shipped", "Cancelled"})
	orders.AddSumType("Payment", []aggregates.Variant{{Name: "Card", Type: money}, {Name: "Invoice", Type: customer}})

	graph := orders.Graph()
	placedBy := graph.AddMorphism("placedBy", order, customer)
	billedTo := graph.AddMorphismWithDescription("billedTo", order, customer, "invoice recipient")
	orders.DefineAggregateWithMembers("OrderAggregate", order, []valueobjects.ObjectID{lineItem})
	orders.AddEqualizerInvariant("BillsBuyer", order, placedBy, billedTo, "orders are billed to their buyer")
	orders.AddPathEquation("buyer_is_payer", entities.NewPathEquation("",
		valueobjects.NewPath(order, customer, placedBy),
		valueobjects.NewPath(order, customer, billedTo),
	))

	shipping := model.AddContext("Shipping")
	recipient := shipping.AddEntity("Recipient")
	shipment := shipping.AddEntity("Shipment")
	shippedTo := shipping.Graph().AddMorphism("shippedTo", shipment, recipient)

	cm := model.AddContextMap("OrdersToShipping", "Orders", "Shipping", valueobjects.PatternCustomerSupplier)
	cm.MapObjectWithDescription(customer, recipient, "buyers receive parcels")
	cm.MapObject(order, shipment)
	cm.MapMorphism(placedBy, shippedTo)

	return model
}
