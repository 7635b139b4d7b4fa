// File: internal/events/kafka/topics.go
package kafka

// FederationEventsTopic is the default Kafka topic for federation events.
const FederationEventsTopic = "federation.events"

// CloudEvents type strings published by this service.
const (
	EventTypeUserFederated = "com.rc4community.federation.user.federated"
	EventTypeUserRepaired  = "com.rc4community.federation.user.repaired"
	EventTypeUserLoggedIn  = "com.rc4community.federation.user.logged_in"
)
