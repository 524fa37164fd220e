package audits

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/routes"
	"philcali.me/barmanager/internal/routes/util"
)

type AuditService struct {
	data data.AuditRepository
}

func NewRoute(data data.AuditRepository) routes.Service {
	return &AuditService{
		data: data,
	}
}

func (as *AuditService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/workspaces/:workspaceId/audits":             util.AuthorizedRoute(as.ListAudits),
		"DELETE:/workspaces/:workspaceId/audits/:auditId": util.AuthorizedRoute(as.DeleteAudit),
	}
}

func (as *AuditService) ListAudits(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList(as.data, NewAudit, event, ctx)
}

func (as *AuditService) DeleteAudit(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := as.data.Delete(ctx, util.WorkspaceId(ctx), util.RequestParam(ctx, "auditId"))
	return util.SerializeResponseNoContent(err)
}
