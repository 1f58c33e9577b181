package services

import (
	"pulse/internal/models"

	"gorm.io/gorm"
)

// 内存版仓库实现，模拟外部文档库的取出-修改-写回语义：
// 读出的都是副本，只有显式 Update 才会写回。

type fakeCommentRepo struct {
	byCid       map[string]models.Comment
	seq         uint
	deletedCids []string // 记录删除顺序，供级联测试断言
	createErr   error
	updateErr   error
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{byCid: make(map[string]models.Comment)}
}

func copyComment(c models.Comment) models.Comment {
	c.Replies = append([]string(nil), c.Replies...)
	return c
}

func (r *fakeCommentRepo) seed(c models.Comment) {
	if c.ID == 0 {
		r.seq++
		c.ID = r.seq
	}
	r.byCid[c.Cid] = copyComment(c)
}

func (r *fakeCommentRepo) Create(comment *models.Comment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	comment.ID = r.seq
	r.byCid[comment.Cid] = copyComment(*comment)
	return nil
}

func (r *fakeCommentRepo) FindByCid(cid string) (*models.Comment, error) {
	c, ok := r.byCid[cid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cc := copyComment(c)
	return &cc, nil
}

func (r *fakeCommentRepo) Update(comment *models.Comment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.byCid[comment.Cid] = copyComment(*comment)
	return nil
}

func (r *fakeCommentRepo) DeleteByCid(cid string) error {
	if _, ok := r.byCid[cid]; ok {
		delete(r.byCid, cid)
		r.deletedCids = append(r.deletedCids, cid)
	}
	return nil
}

func (r *fakeCommentRepo) FindAll() ([]models.Comment, error) {
	comments := make([]models.Comment, 0, len(r.byCid))
	for _, c := range r.byCid {
		comments = append(comments, copyComment(c))
	}
	return comments, nil
}

func (r *fakeCommentRepo) CidsByUser(userID uint) ([]string, error) {
	// 按创建顺序（ID 升序）返回
	var ordered []models.Comment
	for _, c := range r.byCid {
		ordered = append(ordered, c)
	}
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].ID < ordered[i].ID {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	var cids []string
	for _, c := range ordered {
		if c.UserID == userID {
			cids = append(cids, c.Cid)
		}
	}
	return cids, nil
}

type fakePostRepo struct {
	byPid     map[string]models.Post
	seq       uint
	updateErr error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{byPid: make(map[string]models.Post)}
}

func copyPost(p models.Post) models.Post {
	p.Comments = append([]string(nil), p.Comments...)
	p.Hashtags = append([]string(nil), p.Hashtags...)
	p.Options = append([]models.PollOption(nil), p.Options...)
	return p
}

func (r *fakePostRepo) seed(p models.Post) {
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	}
	r.byPid[p.Pid] = copyPost(p)
}

func (r *fakePostRepo) Create(post *models.Post) error {
	r.seq++
	post.ID = r.seq
	r.byPid[post.Pid] = copyPost(*post)
	return nil
}

func (r *fakePostRepo) FindByPid(pid string) (*models.Post, error) {
	p, ok := r.byPid[pid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	pp := copyPost(p)
	return &pp, nil
}

func (r *fakePostRepo) Update(post *models.Post) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.byPid[post.Pid] = copyPost(*post)
	return nil
}

func (r *fakePostRepo) DeleteByPid(pid string) error {
	delete(r.byPid, pid)
	return nil
}

type fakeUserRepo struct {
	byID map[uint]models.User
	seq  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uint]models.User)}
}

func copyUser(u models.User) models.User {
	if u.AffinityMap != nil {
		m := make(map[string]int, len(u.AffinityMap))
		for k, v := range u.AffinityMap {
			m[k] = v
		}
		u.AffinityMap = m
	}
	u.LikedPosts = append([]string(nil), u.LikedPosts...)
	u.SharedPosts = append([]string(nil), u.SharedPosts...)
	return u
}

func (r *fakeUserRepo) seed(u models.User) uint {
	if u.ID == 0 {
		r.seq++
		u.ID = r.seq
	}
	r.byID[u.ID] = copyUser(u)
	return u.ID
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.seq++
	user.ID = r.seq
	r.byID[user.ID] = copyUser(*user)
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	uu := copyUser(u)
	return &uu, nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.byID[user.ID] = copyUser(*user)
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	delete(r.byID, id)
	return nil
}

type fakeNotificationRepo struct {
	created []models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	r.created = append(r.created, *notification)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(id uint) error {
	for i := range r.created {
		if r.created[i].ID == id {
			r.created[i].IsRead = true
		}
	}
	return nil
}
