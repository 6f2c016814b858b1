package events

// Topic constants for domain events emitted during checkout.
const (
	TopicCheckoutCompleted = "checkout.completed"
	TopicCheckoutRejected  = "checkout.rejected"
	TopicShipmentRequested = "shipment.requested"
)

// DefaultTopics returns the canonical list of checkout topics.
func DefaultTopics() []string {
	return []string{
		TopicCheckoutCompleted,
		TopicCheckoutRejected,
		TopicShipmentRequested,
	}
}
