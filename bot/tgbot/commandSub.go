package tgbot

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/safartours/safarserver/bot/botstorage"
	"github.com/safartours/safarserver/bot/model"
)

type SubCommand struct {
	botStorage botstorage.BotStorage
	sub        func(int)
}

func (c *SubCommand) Run(user model.User, _ string) (string, error) {
	err := c.botStorage.Subscribe(user, model.NewInquiry)
	if err != nil {
		return "", err
	}
	c.sub(user.ID)
	return "Subscribed, to stop notifications: /unsub", nil
}

func (c *SubCommand) Help() string {
	return `Subscribe to new inquiry notifications`
}

func (c *SubCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *SubCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}
