package services

import (
	"testing"

	"pulse/internal/errors"
	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*UserService, *fakeUserRepo, *fakeCommentRepo, *fakePostRepo) {
	userRepo := newFakeUserRepo()
	commentRepo := newFakeCommentRepo()
	postRepo := newFakePostRepo()
	profanity := NewProfanityService([]string{"darn"})
	comments := NewCommentService(commentRepo, postRepo, userRepo, nil, profanity)
	svc := NewUserService(userRepo, commentRepo, comments, profanity)
	return svc, userRepo, commentRepo, postRepo
}

func TestRegisterStartsWithEmptyAffinityMap(t *testing.T) {
	svc, userRepo, _, _ := newTestUserService()

	user, err := svc.Register("ann", "ann@example.com", "hello")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.AffinityMap)
	assert.Empty(t, stored.AffinityMap)
	assert.Empty(t, stored.LikedPosts)
}

func TestRegisterRejections(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	_, err := svc.Register("", "a@example.com", "")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.Register("darn", "a@example.com", "")
	assert.True(t, errors.Is(err, errors.ErrProfanity))
}

func TestDeleteUserCascadesAuthoredComments(t *testing.T) {
	svc, userRepo, commentRepo, _ := newTestUserService()
	targetID := userRepo.seed(models.User{Username: "ann", Email: "ann@example.com"})
	otherID := userRepo.seed(models.User{Username: "bob", Email: "bob@example.com"})

	// ann 的评论下挂着 bob 的回复：注销 ann 时整棵子树一起被带掉
	commentRepo.seed(models.Comment{Cid: "ann00001", UserID: targetID, Kind: models.CommentKindComment, ParentID: "post0001", Text: "a1", Replies: []string{"bob00001"}})
	commentRepo.seed(models.Comment{Cid: "bob00001", UserID: otherID, Kind: models.CommentKindReply, ParentID: "ann00001", Text: "b1"})
	commentRepo.seed(models.Comment{Cid: "ann00002", UserID: targetID, Kind: models.CommentKindReply, ParentID: "bob00002", Text: "a2"})
	commentRepo.seed(models.Comment{Cid: "bob00002", UserID: otherID, Kind: models.CommentKindComment, ParentID: "post0001", Text: "b2", Replies: []string{"ann00002"}})

	require.NoError(t, svc.Delete(targetID))

	// ann 本人和其评论（含 bob 挂在下面的回复）都没了
	_, err := userRepo.FindByID(targetID)
	assert.Error(t, err)
	for _, cid := range []string{"ann00001", "ann00002", "bob00001"} {
		_, err := commentRepo.FindByCid(cid)
		assert.Error(t, err, "expected %s deleted", cid)
	}

	// bob 自己的顶层评论还在，只是回复列表里留下悬空 cid
	bob, err := commentRepo.FindByCid("bob00002")
	require.NoError(t, err)
	assert.Equal(t, []string{"ann00002"}, bob.Replies)
}

func TestDeleteUserMissing(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	assert.True(t, errors.Is(svc.Delete(42), errors.ErrNotFound))
}
