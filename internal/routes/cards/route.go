package cards

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/ordering"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/util"
)

type CardService struct {
	data data.CardRepository
}

func NewRoute(data data.CardRepository) routes.Service {
	return &CardService{
		data: data,
	}
}

func renumberGroup(group api.CardGroup, position int) api.CardGroup {
	group.GroupNumber = position
	return group
}

func renumberItem(item api.CardItem, position int) api.CardItem {
	item.ItemNumber = position
	return item
}

// Arrange orders groups and their items by the numbers the client sent and
// then renumbers them to their positions.
func Arrange(groups []api.CardGroup) []api.CardGroup {
	sorted := append([]api.CardGroup{}, groups...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GroupNumber < sorted[j].GroupNumber
	})
	for i, group := range sorted {
		items := append([]api.CardItem{}, group.Items...)
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].ItemNumber < items[b].ItemNumber
		})
		sorted[i].Items = ordering.Renumber(items, renumberItem)
	}
	return ordering.Renumber(sorted, renumberGroup)
}

func Validate(input api.CardInput, create bool) error {
	fields := make(map[string]string)
	if (input.Name == nil && create) || (input.Name != nil && strings.TrimSpace(*input.Name) == "") {
		fields["name"] = "Required"
	}
	if input.Groups != nil {
		for i, group := range *input.Groups {
			if strings.TrimSpace(group.Name) == "" {
				fields[fmt.Sprintf("groups.%d.name", i)] = "Required"
			}
			if group.ItemPrice != nil && *group.ItemPrice < 0 {
				fields[fmt.Sprintf("groups.%d.itemPrice", i)] = "Must not be negative"
			}
			for j, item := range group.Items {
				if strings.TrimSpace(item.CocktailId) == "" {
					fields[fmt.Sprintf("groups.%d.items.%d.cocktailId", i, j)] = "Required"
				}
				if item.SpecialPrice != nil && *item.SpecialPrice < 0 {
					fields[fmt.Sprintf("groups.%d.items.%d.specialPrice", i, j)] = "Must not be negative"
				}
			}
		}
	}
	if len(fields) > 0 {
		return exceptions.Invalid("card", fields)
	}
	return nil
}

func ConvertGroupToData(in api.CardGroup) data.CardGroupDTO {
	return data.CardGroupDTO{
		Name:        in.Name,
		GroupNumber: in.GroupNumber,
		ItemPrice:   in.ItemPrice,
		Items: *util.MapOnList(&in.Items, func(item api.CardItem) data.CardItemDTO {
			return data.CardItemDTO{
				CocktailId:   item.CocktailId,
				ItemNumber:   item.ItemNumber,
				SpecialPrice: item.SpecialPrice,
			}
		}),
	}
}

func ConvertGroupDataToTransfer(in data.CardGroupDTO) api.CardGroup {
	return api.CardGroup{
		Name:        in.Name,
		GroupNumber: in.GroupNumber,
		ItemPrice:   in.ItemPrice,
		Items: *util.MapOnList(&in.Items, func(item data.CardItemDTO) api.CardItem {
			return api.CardItem{
				CocktailId:   item.CocktailId,
				ItemNumber:   item.ItemNumber,
				SpecialPrice: item.SpecialPrice,
			}
		}),
	}
}

func ToData(in api.CardInput) data.CardInputDTO {
	var groups *[]api.CardGroup
	if in.Groups != nil {
		arranged := Arrange(*in.Groups)
		groups = &arranged
	}
	return data.CardInputDTO{
		Name:   in.Name,
		Date:   in.Date,
		Groups: util.MapOnList(groups, ConvertGroupToData),
	}
}

func NewCard(in data.CardDTO) api.Card {
	groups := in.Groups
	if groups == nil {
		groups = []data.CardGroupDTO{}
	}
	return api.Card{
		Id:         in.SK,
		Name:       in.Name,
		Date:       in.Date,
		Groups:     *util.MapOnList(&groups, ConvertGroupDataToTransfer),
		CreateTime: in.CreateTime,
		UpdateTime: in.UpdateTime,
	}
}

func (cs *CardService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/cards":            util.AuthorizedRoute(cs.ListCards),
		"GET:/workspaces/:workspaceId/cards/:cardId":    util.AuthorizedRoute(cs.GetCard),
		"POST:/workspaces/:workspaceId/cards":           util.AuthorizedRoute(cs.CreateCard),
		"PUT:/workspaces/:workspaceId/cards/:cardId":    util.AuthorizedRoute(cs.UpdateCard),
		"DELETE:/workspaces/:workspaceId/cards/:cardId": util.AuthorizedRoute(cs.DeleteCard),
	}
}

func (cs *CardService) ListCards(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(cs.data, NewCard, event, ctx)
}

func (cs *CardService) GetCard(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := cs.data.Get(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "cardId"))
	return util.SerializeResponseOK(NewCard, item, err)
}

func (cs *CardService) CreateCard(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.CardInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := Validate(input, true); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := cs.data.Create(ctx, util.WorkspaceId(ctx), ToData(input))
	return util.SerializeResponseOK(NewCard, created, err)
}

func (cs *CardService) UpdateCard(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[api.CardInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := Validate(input, false); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := cs.data.Update(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "cardId"), ToData(input))
	return util.SerializeResponseOK(NewCard, item, err)
}

func (cs *CardService) DeleteCard(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := cs.data.Delete(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "cardId"))
	return util.SerializeResponseNoContent(err)
}
