package event

import "github.com/l1jgo/ecscore/core/ecs"

// EntityExpired is emitted when an entity's lifetime runs out.
type EntityExpired struct {
	Entity ecs.Entity
}
