// Package custom binds the resource controller to the three kinds of
// user-authored entities the team builder manages.
package custom

import (
	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/mcdev12/courtside/go/internal/resource"
)

type (
	PlayersController = resource.Controller[models.Player, models.PlayerPayload]
	CoachesController = resource.Controller[models.Coach, models.CoachPayload]
	GMsController     = resource.Controller[models.GM, models.GMPayload]
)

var (
	PlayerLabels = resource.Labels{Singular: "player", Plural: "custom players"}
	CoachLabels  = resource.Labels{Singular: "coach", Plural: "custom coaches"}
	GMLabels     = resource.Labels{Singular: "GM", Plural: "custom GMs"}
)

func NewPlayers(api resource.API[models.Player, models.PlayerPayload], notifier resource.Notifier) *PlayersController {
	return resource.NewController(api, notifier, PlayerLabels)
}

func NewCoaches(api resource.API[models.Coach, models.CoachPayload], notifier resource.Notifier) *CoachesController {
	return resource.NewController(api, notifier, CoachLabels)
}

func NewGMs(api resource.API[models.GM, models.GMPayload], notifier resource.Notifier) *GMsController {
	return resource.NewController(api, notifier, GMLabels)
}
