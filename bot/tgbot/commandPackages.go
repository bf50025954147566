package tgbot

import (
	"context"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/safartours/safarserver/bot/model"
	"github.com/safartours/safarserver/internal/service"
)

type PackagesCommand struct {
	catalogService *service.CatalogService
}

func (c *PackagesCommand) Run(_ model.User, _ string) (string, error) {
	packages, err := c.catalogService.ListPackages(context.Background())
	if err != nil {
		return "", err
	}
	if len(packages) == 0 {
		return "No packages yet", nil
	}
	var buffer strings.Builder
	for i := range packages {
		buffer.WriteString(packages[i].Title)
		buffer.WriteString(" (")
		buffer.WriteString(strconv.Itoa(packages[i].DurationDays))
		buffer.WriteString(" days, $")
		buffer.WriteString(strconv.FormatFloat(packages[i].Price, 'f', 2, 64))
		buffer.WriteString(")\n")
	}
	return buffer.String(), nil
}

func (c *PackagesCommand) Help() string {
	return `Lists the tour packages on offer`
}

func (c *PackagesCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}

func (c *PackagesCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}
