package services

import (
	"context"
	"sort"
	"time"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/devillage/teamproject/backend/internal/repositories"
)

// memData is the state of an in-memory store. It is copied before a
// transaction and restored when the transaction fails.
type memData struct {
	nextID     uint
	users      map[uint]models.User
	posts      map[uint]models.Post
	tags       []models.Tag
	bookmarks  []models.Bookmark
	likes      []models.Like
	reports    []models.ReportedPost
	comments   map[uint]models.Comment
	reComments map[uint]models.ReComment
}

func (d memData) clone() memData {
	c := d
	c.users = make(map[uint]models.User, len(d.users))
	for k, v := range d.users {
		c.users[k] = v
	}
	c.posts = make(map[uint]models.Post, len(d.posts))
	for k, v := range d.posts {
		c.posts[k] = v
	}
	c.comments = make(map[uint]models.Comment, len(d.comments))
	for k, v := range d.comments {
		c.comments[k] = v
	}
	c.reComments = make(map[uint]models.ReComment, len(d.reComments))
	for k, v := range d.reComments {
		c.reComments[k] = v
	}
	c.tags = append([]models.Tag(nil), d.tags...)
	c.bookmarks = append([]models.Bookmark(nil), d.bookmarks...)
	c.likes = append([]models.Like(nil), d.likes...)
	c.reports = append([]models.ReportedPost(nil), d.reports...)
	return c
}

// memStore implements repositories.Store over memData.
type memStore struct {
	data memData

	// createErr, when set, is consulted before every relation insert.
	createErr func(kind string, userID, postID uint) error
	// afterRollback runs once after the next failed transaction is rolled back.
	afterRollback []func()

	txCount int
}

func newMemStore() *memStore {
	return &memStore{data: memData{
		users:      map[uint]models.User{},
		posts:      map[uint]models.Post{},
		comments:   map[uint]models.Comment{},
		reComments: map[uint]models.ReComment{},
	}}
}

func (s *memStore) id() uint {
	s.data.nextID++
	return s.data.nextID
}

func (s *memStore) addUser(name string) models.User {
	u := models.User{ID: s.id(), Name: name, Email: name + "@devillage.dev"}
	s.data.users[u.ID] = u
	return u
}

func (s *memStore) addPost(author uint, category string) models.Post {
	p := models.Post{ID: s.id(), UserID: author, Title: "title", Content: "content", Category: category, CreatedAt: time.Now()}
	s.data.posts[p.ID] = p
	return p
}

func (s *memStore) Users() repositories.UserRepository                 { return memUsers{s} }
func (s *memStore) Posts() repositories.PostRepository                 { return memPosts{s} }
func (s *memStore) Bookmarks() repositories.BookmarkRepository         { return memBookmarks{s} }
func (s *memStore) Likes() repositories.LikeRepository                 { return memLikes{s} }
func (s *memStore) ReportedPosts() repositories.ReportedPostRepository { return memReports{s} }
func (s *memStore) Comments() repositories.CommentRepository           { return memComments{s} }

func (s *memStore) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	s.txCount++
	snapshot := s.data.clone()
	if err := fn(s); err != nil {
		s.data = snapshot
		hooks := s.afterRollback
		s.afterRollback = nil
		for _, h := range hooks {
			h()
		}
		return err
	}
	return nil
}

func (s *memStore) checkCreate(kind string, userID, postID uint) error {
	if s.createErr == nil {
		return nil
	}
	return s.createErr(kind, userID, postID)
}

type memUsers struct{ s *memStore }

func (r memUsers) CreateUser(_ context.Context, user *models.User) error {
	user.ID = r.s.id()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r memUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memUsers) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	for _, u := range r.s.data.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memUsers) UpdateUser(_ context.Context, user *models.User) error {
	r.s.data.users[user.ID] = *user
	return nil
}

type memPosts struct{ s *memStore }

func (r memPosts) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = r.s.id()
	post.CreatedAt = time.Now()
	r.s.data.posts[post.ID] = *post
	return nil
}

func (r memPosts) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	p, ok := r.s.data.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r memPosts) ListPosts(_ context.Context, category string, offset, limit int) ([]models.Post, int64, error) {
	var all []models.Post
	for _, p := range r.s.data.posts {
		if category == "" || p.Category == category {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Post{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r memPosts) GetPostsByIDs(_ context.Context, ids []uint) ([]models.Post, error) {
	posts := []models.Post{}
	for _, id := range ids {
		if p, ok := r.s.data.posts[id]; ok {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r memPosts) UpdatePost(_ context.Context, post *models.Post, replaceTags bool) error {
	old := r.s.data.posts[post.ID]
	if !replaceTags {
		post.Tags = old.Tags
	}
	r.s.data.posts[post.ID] = *post
	return nil
}

func (r memPosts) DeletePost(_ context.Context, id uint) error {
	if _, ok := r.s.data.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.data.posts, id)
	return nil
}

func (r memPosts) ResolveTags(_ context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, n := range names {
		found := false
		for _, t := range r.s.data.tags {
			if t.Name == n {
				tags = append(tags, t)
				found = true
				break
			}
		}
		if !found {
			t := models.Tag{ID: r.s.id(), Name: n}
			r.s.data.tags = append(r.s.data.tags, t)
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (r memPosts) AddClicks(_ context.Context, id uint, n int64) error {
	p := r.s.data.posts[id]
	p.Clicks += n
	r.s.data.posts[id] = p
	return nil
}

type memBookmarks struct{ s *memStore }

func (r memBookmarks) FindByUserAndPost(_ context.Context, userID, postID uint) ([]models.Bookmark, error) {
	var out []models.Bookmark
	for _, b := range r.s.data.bookmarks {
		if b.UserID == userID && b.PostID == postID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r memBookmarks) Create(_ context.Context, b *models.Bookmark) error {
	if err := r.s.checkCreate("bookmark", b.UserID, b.PostID); err != nil {
		return err
	}
	b.ID = r.s.id()
	r.s.data.bookmarks = append(r.s.data.bookmarks, *b)
	return nil
}

func (r memBookmarks) Delete(_ context.Context, b *models.Bookmark) error {
	kept := r.s.data.bookmarks[:0]
	for _, x := range r.s.data.bookmarks {
		if x.ID != b.ID {
			kept = append(kept, x)
		}
	}
	r.s.data.bookmarks = kept
	return nil
}

func (r memBookmarks) ListByUser(_ context.Context, userID uint) ([]models.Bookmark, error) {
	var out []models.Bookmark
	for i := len(r.s.data.bookmarks) - 1; i >= 0; i-- {
		if b := r.s.data.bookmarks[i]; b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r memBookmarks) DeleteByPostID(_ context.Context, postID uint) error {
	kept := r.s.data.bookmarks[:0]
	for _, x := range r.s.data.bookmarks {
		if x.PostID != postID {
			kept = append(kept, x)
		}
	}
	r.s.data.bookmarks = kept
	return nil
}

type memLikes struct{ s *memStore }

func (r memLikes) FindByUserAndPost(_ context.Context, userID, postID uint) ([]models.Like, error) {
	var out []models.Like
	for _, l := range r.s.data.likes {
		if l.UserID == userID && l.PostID == postID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memLikes) Create(_ context.Context, l *models.Like) error {
	if err := r.s.checkCreate("like", l.UserID, l.PostID); err != nil {
		return err
	}
	l.ID = r.s.id()
	r.s.data.likes = append(r.s.data.likes, *l)
	return nil
}

func (r memLikes) Delete(_ context.Context, l *models.Like) error {
	kept := r.s.data.likes[:0]
	for _, x := range r.s.data.likes {
		if x.ID != l.ID {
			kept = append(kept, x)
		}
	}
	r.s.data.likes = kept
	return nil
}

func (r memLikes) CountByPostID(_ context.Context, postID uint) (int64, error) {
	var n int64
	for _, l := range r.s.data.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (r memLikes) DeleteByPostID(_ context.Context, postID uint) error {
	kept := r.s.data.likes[:0]
	for _, x := range r.s.data.likes {
		if x.PostID != postID {
			kept = append(kept, x)
		}
	}
	r.s.data.likes = kept
	return nil
}

type memReports struct{ s *memStore }

func (r memReports) FindByUserAndPost(_ context.Context, userID, postID uint) ([]models.ReportedPost, error) {
	var out []models.ReportedPost
	for _, rp := range r.s.data.reports {
		if rp.UserID == userID && rp.PostID == postID {
			out = append(out, rp)
		}
	}
	return out, nil
}

func (r memReports) Create(_ context.Context, rp *models.ReportedPost) error {
	if err := r.s.checkCreate("report", rp.UserID, rp.PostID); err != nil {
		return err
	}
	rp.ID = r.s.id()
	r.s.data.reports = append(r.s.data.reports, *rp)
	return nil
}

func (r memReports) DeleteByPostID(_ context.Context, postID uint) error {
	kept := r.s.data.reports[:0]
	for _, x := range r.s.data.reports {
		if x.PostID != postID {
			kept = append(kept, x)
		}
	}
	r.s.data.reports = kept
	return nil
}

type memComments struct{ s *memStore }

func (r memComments) CreateComment(_ context.Context, c *models.Comment) error {
	c.ID = r.s.id()
	r.s.data.comments[c.ID] = *c
	return nil
}

func (r memComments) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	c, ok := r.s.data.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r memComments) GetCommentsByPostID(_ context.Context, postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.s.data.comments {
		if c.PostID != postID {
			continue
		}
		for _, rc := range r.s.data.reComments {
			if rc.CommentID == c.ID {
				c.ReComments = append(c.ReComments, rc)
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memComments) UpdateComment(_ context.Context, c *models.Comment) error {
	r.s.data.comments[c.ID] = *c
	return nil
}

func (r memComments) DeleteComment(_ context.Context, id uint) error {
	for rid, rc := range r.s.data.reComments {
		if rc.CommentID == id {
			delete(r.s.data.reComments, rid)
		}
	}
	delete(r.s.data.comments, id)
	return nil
}

func (r memComments) DeleteByPostID(ctx context.Context, postID uint) error {
	for id, c := range r.s.data.comments {
		if c.PostID == postID {
			_ = r.DeleteComment(ctx, id)
		}
	}
	return nil
}

func (r memComments) CreateReComment(_ context.Context, rc *models.ReComment) error {
	rc.ID = r.s.id()
	r.s.data.reComments[rc.ID] = *rc
	return nil
}

func (r memComments) GetReCommentByID(_ context.Context, id uint) (*models.ReComment, error) {
	rc, ok := r.s.data.reComments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &rc, nil
}

func (r memComments) UpdateReComment(_ context.Context, rc *models.ReComment) error {
	r.s.data.reComments[rc.ID] = *rc
	return nil
}

func (r memComments) DeleteReComment(_ context.Context, id uint) error {
	delete(r.s.data.reComments, id)
	return nil
}
