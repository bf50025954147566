package tgbot

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/safartours/safarserver/bot/botstorage"
	"github.com/safartours/safarserver/bot/model"
)

type UnsubCommand struct {
	botStorage botstorage.BotStorage
	unsub      func(int)
}

func (c *UnsubCommand) Run(user model.User, _ string) (string, error) {
	err := c.botStorage.Unsubscribe(user, model.NewInquiry)
	if err != nil {
		return "", err
	}
	c.unsub(user.ID)
	return "Unsubscribed, to get notifications again: /sub", nil
}

func (c *UnsubCommand) Help() string {
	return `Unsubscribe from new inquiry notifications`
}

func (c *UnsubCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *UnsubCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}
