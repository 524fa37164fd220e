package audits

import (
	"philcali.me/barmanager/internal/api"
	"philcali.me/barmanager/internal/data"
)

func NewAudit(auditDTO data.AuditDTO) api.Audit {
	return api.Audit{
		Id:           auditDTO.SK,
		Action:       auditDTO.Action,
		ResourceType: auditDTO.ResourceType,
		ResourceId:   auditDTO.ResourceId,
		Message:      auditDTO.Message,
		CreateTime:   auditDTO.CreateTime,
	}
}
