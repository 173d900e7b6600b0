package rabbitmq

import (
	"fmt"
	"strings"
)

type ResourceType string

const (
	ResourceTypeAll         ResourceType = "_all_"
	ResourceTypeAppointment ResourceType = "appointment"
	ResourceTypeSpecialist  ResourceType = "specialist"
)

const MirrorReceiver = "mirror"

// RoutingKey addresses a change notification.
// Пример: triage.mirror.appointment.<instance-id>.store
type RoutingKey struct {
	Source       string
	Receiver     string
	ResourceType ResourceType
	InstanceID   string
	EventType    string
}

func (k RoutingKey) String() string {
	return strings.Join([]string{
		k.Source,
		k.Receiver,
		string(k.ResourceType),
		k.InstanceID,
		k.EventType,
	}, ".")
}

func ParseRoutingKey(raw string) (RoutingKey, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 5 {
		return RoutingKey{}, fmt.Errorf("invalid routing key: %s", raw)
	}

	return RoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: ResourceType(parts[2]),
		InstanceID:   parts[3],
		EventType:    parts[4],
	}, nil
}

// BindingKey matches every event for the resource, from any instance.
func BindingKey(source string, resource ResourceType) string {
	return fmt.Sprintf("%s.%s.%s.*.*", source, MirrorReceiver, resource)
}
