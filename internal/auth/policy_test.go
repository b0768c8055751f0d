package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stagedoor/theater-api/internal/model"
)

func managed(id uint64) *model.Theater {
	return &model.Theater{ID: 1, Name: "Grand Theater", ManagerID: &id}
}

func TestCanModifyTheater(t *testing.T) {
	unmanaged := &model.Theater{ID: 2, Name: "Vintage Drive-In"}

	testCases := []struct {
		name      string
		requester Identity
		theater   *model.Theater
		want      bool
	}{
		{
			name:      "assigned manager may modify",
			requester: Identity{ID: 7, Roles: []string{model.RoleUser}},
			theater:   managed(7),
			want:      true,
		},
		{
			name:      "other user may not modify",
			requester: Identity{ID: 8, Roles: []string{model.RoleUser}},
			theater:   managed(7),
			want:      false,
		},
		{
			name:      "admin may modify regardless of manager",
			requester: Identity{ID: 99, Roles: []string{model.RoleAdmin}},
			theater:   managed(7),
			want:      true,
		},
		{
			name:      "unmanaged theater denies plain user",
			requester: Identity{ID: 7, Roles: []string{model.RoleUser}},
			theater:   unmanaged,
			want:      false,
		},
		{
			name:      "unmanaged theater admits admin",
			requester: Identity{ID: 99, Roles: []string{model.RoleAdmin}},
			theater:   unmanaged,
			want:      true,
		},
		{
			name:      "no roles and no match denied",
			requester: Identity{ID: 3},
			theater:   managed(7),
			want:      false,
		},
		{
			name:      "manager id zero does not match zero-value requester",
			requester: Identity{},
			theater:   unmanaged,
			want:      false,
		},
		{
			name:      "admin among multiple roles",
			requester: Identity{ID: 5, Roles: []string{model.RoleUser, model.RoleAdmin}},
			theater:   unmanaged,
			want:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanModifyTheater(tc.requester, tc.theater))
		})
	}
}

func TestHasRole(t *testing.T) {
	id := Identity{ID: 1, Roles: []string{model.RoleUser}}
	assert.True(t, id.HasRole(model.RoleUser))
	assert.False(t, id.HasRole(model.RoleAdmin))
	assert.False(t, id.IsAdmin())
	// Role names are case-sensitive; the vocabulary is fixed.
	assert.False(t, id.HasRole("user"))
}
