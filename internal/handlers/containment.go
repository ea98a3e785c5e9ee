package handlers

import (
	"github.com/darkhorsekelly/mesh/internal/fp"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

// findByID returns the first entity in set whose ID matches, or false.
func findByID(set []models.Entity, id string) (models.Entity, bool) {
	for _, e := range set {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entity{}, false
}

// ValidateLoad implements the §4.1.2 Triad plus the "already contained"
// and "container is its own content" rejections. targets must include
// the container, every requested content entity, and every other
// entity already parented to the container (so remaining-capacity math
// doesn't need a side channel into world state).
func ValidateLoad(actor models.Entity, targets []models.Entity, action models.Action) bool {
	container, ok := findByID(targets, action.ContainerID)
	if !ok || !container.IsContainer {
		return false
	}
	if actor.ID != container.ID && !fp.WithinReach(actor.Position, container.Position, actor.Reach) {
		return false
	}
	if len(action.ContentIDs) == 0 {
		return false
	}

	requested := make(map[string]bool, len(action.ContentIDs))
	for _, id := range action.ContentIDs {
		requested[id] = true
	}

	var newVolume fp.Scalar
	for _, id := range action.ContentIDs {
		content, ok := findByID(targets, id)
		if !ok {
			return false
		}
		if content.ID == container.ID {
			return false
		}
		if content.ParentID != nil {
			return false
		}
		if actor.ID != content.ID && !fp.WithinReach(actor.Position, content.Position, actor.Reach) {
			return false
		}
		newVolume = fp.Add(newVolume, content.Volume)
	}

	var existingVolume fp.Scalar
	for _, e := range targets {
		if e.ParentID != nil && *e.ParentID == container.ID && !requested[e.ID] {
			existingVolume = fp.Add(existingVolume, e.Volume)
		}
	}

	return fp.Add(existingVolume, newVolume) <= container.ContainerVolume
}

// ExecuteLoad parents every requested content under the container at
// the container's position and grows the container's mass by the sum
// of the contents' mass (§3 invariant 7).
func ExecuteLoad(_ models.Entity, targets []models.Entity, action models.Action, _ TickContext) []models.EntityUpdate {
	container, _ := findByID(targets, action.ContainerID)
	containerID := container.ID

	updates := make([]models.EntityUpdate, 0, len(action.ContentIDs)+1)
	var massAdded fp.Scalar
	for _, id := range action.ContentIDs {
		content, ok := findByID(targets, id)
		if !ok {
			continue
		}
		pos := container.Position
		updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
			ID: content.ID,
			Fields: models.Fields{
				ParentID: &containerID,
				Position: &pos,
			},
		}})
		massAdded = fp.Add(massAdded, content.Mass)
	}

	newMass := fp.Add(container.Mass, massAdded)
	updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
		ID:     container.ID,
		Fields: models.Fields{Mass: &newMass},
	}})
	return updates
}

// LoadSpec pairs ValidateLoad/ExecuteLoad for the dispatcher.
var LoadSpec = Spec{Validate: ValidateLoad, Execute: ExecuteLoad}

// ValidateUnload requires every content to be currently contained and
// reachable by the actor (directly or via being the container itself),
// with exactly one newPosition per content.
func ValidateUnload(actor models.Entity, targets []models.Entity, action models.Action) bool {
	if len(action.ContentIDs) == 0 || len(action.ContentIDs) != len(action.NewPositions) {
		return false
	}
	for _, id := range action.ContentIDs {
		content, ok := findByID(targets, id)
		if !ok || content.ParentID == nil {
			return false
		}
		container, ok := findByID(targets, *content.ParentID)
		if !ok {
			return false
		}
		if actor.ID != container.ID && !fp.WithinReach(actor.Position, container.Position, actor.Reach) {
			return false
		}
	}
	return true
}

// ExecuteUnload clears containment, relocates each content to its
// requested position, gives it the container's velocity (momentum
// inheritance at the moment of separation), and shrinks the container's
// mass by what left it.
func ExecuteUnload(_ models.Entity, targets []models.Entity, action models.Action, _ TickContext) []models.EntityUpdate {
	massRemoved := map[string]fp.Scalar{}
	updates := make([]models.EntityUpdate, 0, len(action.ContentIDs)+1)

	for i, id := range action.ContentIDs {
		content, ok := findByID(targets, id)
		if !ok {
			continue
		}
		container, ok := findByID(targets, *content.ParentID)
		if !ok {
			continue
		}
		pos := action.NewPositions[i]
		vel := container.Velocity
		updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
			ID: content.ID,
			Fields: models.Fields{
				ClearParent: true,
				Position:    &pos,
				Velocity:    &vel,
			},
		}})
		massRemoved[container.ID] = fp.Add(massRemoved[container.ID], content.Mass)
	}

	for containerID, removed := range massRemoved {
		container, _ := findByID(targets, containerID)
		newMass := fp.Sub(container.Mass, removed)
		updates = append(updates, models.EntityUpdate{Patch: &models.Patch{
			ID:     containerID,
			Fields: models.Fields{Mass: &newMass},
		}})
	}
	return updates
}

// UnloadSpec pairs ValidateUnload/ExecuteUnload for the dispatcher.
var UnloadSpec = Spec{Validate: ValidateUnload, Execute: ExecuteUnload}
