package domain

import (
	"github.com/giftgroup/backend/internal/common"
	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/model"
)

func convertAssignment(a *entity.Assignment) model.Assignment {
	if a == nil {
		return model.Assignment{}
	}

	return model.Assignment{
		GroupID:    a.GroupID,
		GiverID:    a.GiverID,
		ReceiverID: a.ReceiverID,
		Revealed:   a.Revealed,
		CreatedAt:  a.CreatedAt.Format(common.DateTimeLayout),
	}
}

func convertExclusion(e *entity.Exclusion) model.Exclusion {
	if e == nil {
		return model.Exclusion{}
	}

	return model.Exclusion{
		ID:        e.ID,
		GroupID:   e.GroupID,
		MemberAID: e.MemberAID,
		MemberBID: e.MemberBID,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt.Format(common.DateTimeLayout),
	}
}
