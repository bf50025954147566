package tgbot

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/safartours/safarserver/bot/model"
	"github.com/safartours/safarserver/internal/service"
)

type LeadsCommand struct {
	catalogService *service.CatalogService
}

func (c *LeadsCommand) Run(_ model.User, _ string) (string, error) {
	inquiries, err := c.catalogService.ListInquiries(context.Background())
	if err != nil {
		return "", err
	}
	if len(inquiries) == 0 {
		return "No inquiries yet", nil
	}
	var buffer strings.Builder
	for i := range inquiries {
		if i > 9 {
			break
		}
		buffer.WriteString(inquiries[i].Name)
		buffer.WriteString(" (")
		buffer.WriteString(inquiries[i].Phone)
		buffer.WriteString(") -> ")
		buffer.WriteString(inquiries[i].PackageTitle)
		buffer.WriteString("\n")
	}
	return buffer.String(), nil
}

func (c *LeadsCommand) Help() string {
	return `Shows the latest inquiries`
}

func (c *LeadsCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *LeadsCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}
