package handlers

import "github.com/darkhorsekelly/mesh/pkg/models"

// rejectAll is the Validator half of every not-yet-implemented action
// kind named in the catalogue (§4.1.9): MANEUVER, TRANSPORT, LAUNCH,
// MANUFACTURE, MOD, COMMIT, VECTOR_LOCK, MOVE_SCANNER, SCAN,
// TRANSFER_RESOURCE, ENCOUNTER. The dispatcher must still accept these
// kinds without error; they simply never produce an update.
func rejectAll(models.Entity, []models.Entity, models.Action) bool { return false }

func noUpdates(models.Entity, []models.Entity, models.Action, TickContext) []models.EntityUpdate {
	return nil
}

// UnimplementedSpec always fails validation, producing no updates. It
// is the placeholder for every catalogue member whose physics and data
// flow are out of this resolver's scope but whose kind must still
// round-trip through the dispatcher without error.
var UnimplementedSpec = Spec{Validate: rejectAll, Execute: noUpdates}
