package entity

import "github.com/giftgroup/backend/pkg/enum"

type GroupRole string

var (
	GroupAdmin  = enum.New(GroupRole("admin"))
	GroupMember = enum.New(GroupRole("member"))
)

// Group is owned by the group service, the draw engine only reads it and
// owns IsDrawActive and DrawVersion.
type Group struct {
	Base
	Name string

	IsDrawActive bool  `gorm:"not null;default:false"`
	DrawVersion  int64 `gorm:"not null;default:0"`
}

func (Group) TableName() string {
	return "gift_groups"
}

type GroupMembership struct {
	GroupID string `gorm:"primaryKey"`
	Group   Group  `gorm:"foreignKey:GroupID"`
	UserID  string `gorm:"primaryKey"`
	Role    GroupRole
}

func (GroupMembership) TableName() string {
	return "gift_group_members"
}
