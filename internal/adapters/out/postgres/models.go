package postgres

import (
	"fmt"

	"relay/internal/adapters/out/postgres/deliverylogrepo"
	"relay/internal/adapters/out/postgres/locationrepo"
	"relay/internal/adapters/out/postgres/packetrepo"
	"relay/internal/adapters/out/postgres/routerepo"
	"relay/internal/adapters/out/postgres/stayrepo"
	"relay/internal/adapters/out/postgres/userrepo"
	"relay/internal/core/domain/model/route"

	"gorm.io/gorm"
)

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&locationrepo.LocationDTO{},
		&stayrepo.StayDTO{},
		&packetrepo.PacketDTO{},
		&routerepo.RouteDTO{},
		&routerepo.RouteStepDTO{},
		&deliverylogrepo.EntryDTO{},
	}
}

// Migrate creates or updates the schema. A packet holds at most one current
// route, enforced by a partial unique index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS routes_one_current_per_packet ON routes (packet_id) WHERE status = %d",
		int(route.Current),
	)).Error
}
