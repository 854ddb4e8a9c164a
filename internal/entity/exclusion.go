package entity

import (
	"errors"

	"github.com/google/uuid"
)

var ErrSelfExclusion = errors.New("a member cannot be excluded from themselves")

// Exclusion forbids MemberAID and MemberBID to be assigned to each other in
// either direction. MemberAID < MemberBID always holds, so one row covers
// both orientations.
type Exclusion struct {
	Base
	GroupID   string `gorm:"uniqueIndex:idx_draw_exclusions_pair;not null"`
	Group     Group  `gorm:"foreignKey:GroupID"`
	MemberAID string `gorm:"uniqueIndex:idx_draw_exclusions_pair;not null"`
	MemberBID string `gorm:"uniqueIndex:idx_draw_exclusions_pair;not null"`
	CreatedBy string
}

func (Exclusion) TableName() string {
	return "draw_exclusions"
}

// NewExclusion orders the two members and assigns a fresh id.
func NewExclusion(groupID, a, b, createdBy string) (*Exclusion, error) {
	if a == b {
		return nil, ErrSelfExclusion
	}

	a, b = OrderPair(a, b)
	return &Exclusion{
		Base:      Base{ID: uuid.NewString()},
		GroupID:   groupID,
		MemberAID: a,
		MemberBID: b,
		CreatedBy: createdBy,
	}, nil
}

func OrderPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}

	return a, b
}
