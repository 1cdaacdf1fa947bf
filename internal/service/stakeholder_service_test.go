package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskup/internal/dto"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

func buildStakeholderService(t *testing.T) (StakeholderService, *testFixture) {
	t.Helper()
	f := newFixture(t)
	svc := NewStakeholderService(
		repository.NewStakeholderRepository(f.db),
		repository.NewUserRepository(f.db),
		f.access,
	)
	return svc, f
}

func TestStakeholderCreate(t *testing.T) {
	svc, f := buildStakeholderService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	// 仅所有者可创建
	_, err := svc.Create(project.ID, f.member.ID, &dto.CreateStakeholderRequest{
		UserID:     f.member.ID,
		Percentage: 30,
	})
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)

	resp, err := svc.Create(project.ID, f.owner.ID, &dto.CreateStakeholderRequest{
		UserID:     f.member.ID,
		Percentage: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, resp.Percentage)
}

func TestStakeholderPercentageBounds(t *testing.T) {
	svc, f := buildStakeholderService(t)
	project := newTestProject(t, f.db, f.owner.ID)

	_, err := svc.Create(project.ID, f.owner.ID, &dto.CreateStakeholderRequest{
		UserID:     f.member.ID,
		Percentage: 150,
	})
	assertValidationError(t, err)

	_, err = svc.Create(project.ID, f.owner.ID, &dto.CreateStakeholderRequest{
		UserID:     f.member.ID,
		Percentage: -10,
	})
	assertValidationError(t, err)

	// 边界值合法
	resp, err := svc.Create(project.ID, f.owner.ID, &dto.CreateStakeholderRequest{
		UserID:     f.member.ID,
		Percentage: 100,
	})
	require.NoError(t, err)

	bad := 101.0
	_, err = svc.Update(resp.ID, f.owner.ID, &dto.UpdateStakeholderRequest{Percentage: &bad})
	assertValidationError(t, err)

	zero := 0.0
	updated, err := svc.Update(resp.ID, f.owner.ID, &dto.UpdateStakeholderRequest{Percentage: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Percentage)
}

func TestStakeholderListAndDelete(t *testing.T) {
	svc, f := buildStakeholderService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	resp, err := svc.Create(project.ID, f.owner.ID, &dto.CreateStakeholderRequest{
		UserID:     f.member.ID,
		Percentage: 40,
	})
	require.NoError(t, err)

	// 成员可查看, 外人不可
	list, err := svc.ListByProject(project.ID, f.member.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListByProject(project.ID, f.outsider.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrNoProjectAccess)

	// 仅所有者可删除
	assert.ErrorIs(t, svc.Delete(resp.ID, f.member.ID), pkgErrors.ErrNotProjectOwner)
	require.NoError(t, svc.Delete(resp.ID, f.owner.ID))

	list, err = svc.ListByProject(project.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
