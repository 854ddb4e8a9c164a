package testutil

import (
	"context"

	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/pkg/xcontext"
)

var (
	// Admin of every group.
	User1 = "user1"
	User2 = "user2"
	User3 = "user3"
	User4 = "user4"

	// Not a member of any group.
	Stranger = "stranger"

	// Group1 has User1 (admin), User2, User3 and User4.
	Group1 = entity.Group{Base: entity.Base{ID: "group1"}, Name: "Family"}

	// Group2 has User1 (admin) and User2.
	Group2 = entity.Group{Base: entity.Base{ID: "group2"}, Name: "Couple"}

	// Group3 has only User1 (admin).
	Group3 = entity.Group{Base: entity.Base{ID: "group3"}, Name: "Solo"}

	Memberships = []entity.GroupMembership{
		{GroupID: Group1.ID, UserID: User1, Role: entity.GroupAdmin},
		{GroupID: Group1.ID, UserID: User2, Role: entity.GroupMember},
		{GroupID: Group1.ID, UserID: User3, Role: entity.GroupMember},
		{GroupID: Group1.ID, UserID: User4, Role: entity.GroupMember},
		{GroupID: Group2.ID, UserID: User1, Role: entity.GroupAdmin},
		{GroupID: Group2.ID, UserID: User2, Role: entity.GroupMember},
		{GroupID: Group3.ID, UserID: User1, Role: entity.GroupAdmin},
	}
)

// CreateFixtureDb seeds the database of ctx with the groups and members
// above.
func CreateFixtureDb(ctx context.Context) {
	InsertGroups(ctx)
	InsertMemberships(ctx)
}

func InsertGroups(ctx context.Context) {
	for _, g := range []entity.Group{Group1, Group2, Group3} {
		g := g
		if err := xcontext.DB(ctx).Create(&g).Error; err != nil {
			panic(err)
		}
	}
}

func InsertMemberships(ctx context.Context) {
	for _, m := range Memberships {
		m := m
		if err := xcontext.DB(ctx).Omit("Group").Create(&m).Error; err != nil {
			panic(err)
		}
	}
}

// SampleGroup creates a group with an admin and the given members.
func SampleGroup(ctx context.Context, groupID, admin string, members ...string) entity.Group {
	group := entity.Group{Base: entity.Base{ID: groupID}, Name: groupID}
	if err := xcontext.DB(ctx).Create(&group).Error; err != nil {
		panic(err)
	}

	all := []entity.GroupMembership{{GroupID: groupID, UserID: admin, Role: entity.GroupAdmin}}
	for _, m := range members {
		all = append(all, entity.GroupMembership{GroupID: groupID, UserID: m, Role: entity.GroupMember})
	}

	for _, m := range all {
		m := m
		if err := xcontext.DB(ctx).Omit("Group").Create(&m).Error; err != nil {
			panic(err)
		}
	}

	return group
}
