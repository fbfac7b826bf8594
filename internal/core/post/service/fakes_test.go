package postapp

import (
	"context"
	"sort"
	"strings"
	"time"

	categoryEntity "board/internal/core/category"
	commentEntity "board/internal/core/comment"
	favoriteEntity "board/internal/core/favorite"
	"board/internal/core/notification"
	postEntity "board/internal/core/post"
	userEntity "board/internal/core/user"

	"github.com/gofrs/uuid"
)

// memStore is an in-memory stand-in for the relational store. It backs every
// repository fake so the service sees one consistent data set.
type memStore struct {
	users       map[uuid.UUID]*userEntity.User
	categories  map[uuid.UUID]*categoryEntity.Category
	posts       map[uuid.UUID]*postEntity.Post
	favorites   []*favoriteEntity.Favorite
	comments    []*commentEntity.Comment
	subComments []*commentEntity.SubComment
	queue       []*notification.Queue

	clock time.Time
	err   error // returned by every call when set
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uuid.UUID]*userEntity.User{},
		categories: map[uuid.UUID]*categoryEntity.Category{},
		posts:      map[uuid.UUID]*postEntity.Post{},
		clock:      time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) addUser(username, nickname string) *userEntity.User {
	u := &userEntity.User{
		ID:           uuid.Must(uuid.NewV4()),
		Username:     username,
		Nickname:     nickname,
		ProfileImage: "https://img.example/" + username + ".png",
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addCategory(name string) *categoryEntity.Category {
	c := &categoryEntity.Category{ID: uuid.Must(uuid.NewV4()), Name: name, CreatedAt: m.tick()}
	m.categories[c.ID] = c
	return c
}

func (m *memStore) onlyPost() *postEntity.Post {
	for _, p := range m.posts {
		return p
	}
	return nil
}

func (m *memStore) countFavorites(postID uuid.UUID) int {
	n := 0
	for _, f := range m.favorites {
		if f.PostID == postID {
			n++
		}
	}
	return n
}

func (m *memStore) countComments(postID uuid.UUID) int {
	n := 0
	for _, c := range m.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

// hydrate returns a detached copy of p with its relations loaded.
func (m *memStore) hydrate(p *postEntity.Post) *postEntity.Post {
	cp := *p
	cp.User = *m.users[p.UserID]
	cp.Category = *m.categories[p.CategoryID]
	cp.Images = append([]postEntity.Image(nil), p.Images...)
	sort.Slice(cp.Images, func(i, j int) bool { return cp.Images[i].Position < cp.Images[j].Position })
	return &cp
}

func (m *memStore) hydrateAll(posts []*postEntity.Post) []*postEntity.Post {
	out := make([]*postEntity.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, m.hydrate(p))
	}
	return out
}

func (m *memStore) sortedPosts(keep func(p *postEntity.Post) bool) []*postEntity.Post {
	var out []*postEntity.Post
	for _, p := range m.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeUserRepo struct{ *memStore }

func (r fakeUserRepo) Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.users[u.ID] = u
	return u, nil
}

func (r fakeUserRepo) FindByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.FindByUsername(ctx, username)
	return u != nil, err
}

type fakeCategoryRepo struct{ *memStore }

func (r fakeCategoryRepo) Create(ctx context.Context, c *categoryEntity.Category) (*categoryEntity.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	c.CreatedAt = r.tick()
	r.categories[c.ID] = c
	return c, nil
}

func (r fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*categoryEntity.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.categories[id], nil
}

func (r fakeCategoryRepo) FindByName(ctx context.Context, name string) (*categoryEntity.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r fakeCategoryRepo) FindAll(ctx context.Context) ([]*categoryEntity.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*categoryEntity.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakePostRepo struct{ *memStore }

func (r fakePostRepo) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	p.CreatedAt = r.tick()
	r.posts[p.ID] = p
	return p, nil
}

func (r fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*postEntity.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	if p, ok := r.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r fakePostRepo) FindByCategoryAndID(ctx context.Context, categoryID, id uuid.UUID) (*postEntity.Post, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil || p == nil || p.CategoryID != categoryID {
		return nil, err
	}
	return p, nil
}

func (r fakePostRepo) FindDetail(ctx context.Context, categoryID, id uuid.UUID) (*postEntity.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.posts[id]
	if !ok || p.CategoryID != categoryID {
		return nil, nil
	}
	return r.hydrate(p), nil
}

func (r fakePostRepo) ExistsByCategoryAndID(ctx context.Context, categoryID, id uuid.UUID) (bool, error) {
	p, err := r.FindByCategoryAndID(ctx, categoryID, id)
	return p != nil, err
}

func (r fakePostRepo) IsOwner(ctx context.Context, categoryID, id, userID uuid.UUID) (bool, error) {
	p, err := r.FindByCategoryAndID(ctx, categoryID, id)
	return p != nil && p.UserID == userID, err
}

func (r fakePostRepo) Update(ctx context.Context, p *postEntity.Post) error {
	if r.err != nil {
		return r.err
	}
	stored := r.posts[p.ID]
	stored.Title = p.Title
	stored.Contents = p.Contents
	return nil
}

func (r fakePostRepo) ReplaceImages(ctx context.Context, postID uuid.UUID, images []postEntity.Image) error {
	if r.err != nil {
		return r.err
	}
	r.posts[postID].Images = append([]postEntity.Image(nil), images...)
	return nil
}

func (r fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	delete(r.posts, id)
	return nil
}

func (r fakePostRepo) IncreaseViewCount(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.posts[id].ViewCount++
	return nil
}

func (r fakePostRepo) IncreaseFavoriteCount(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.posts[id].FavoriteCount++
	return nil
}

func (r fakePostRepo) DecreaseFavoriteCount(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	if p := r.posts[id]; p.FavoriteCount > 0 {
		p.FavoriteCount--
	}
	return nil
}

func (r fakePostRepo) IncreaseCommentCount(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.posts[id].CommentCount++
	return nil
}

func (r fakePostRepo) FavoriteCount(ctx context.Context, id uuid.UUID) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.posts[id].FavoriteCount, nil
}

func (r fakePostRepo) FindLatestByCategory(ctx context.Context, categoryID uuid.UUID) ([]*postEntity.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.hydrateAll(r.sortedPosts(func(p *postEntity.Post) bool { return p.CategoryID == categoryID })), nil
}

func (r fakePostRepo) FindTopByCategorySince(ctx context.Context, categoryID uuid.UUID, since time.Time, limit int) ([]*postEntity.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	posts := r.sortedPosts(func(p *postEntity.Post) bool {
		return p.CategoryID == categoryID && !p.CreatedAt.Before(since)
	})
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.FavoriteCount != b.FavoriteCount {
			return a.FavoriteCount > b.FavoriteCount
		}
		if a.CommentCount != b.CommentCount {
			return a.CommentCount > b.CommentCount
		}
		return a.ViewCount > b.ViewCount
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return r.hydrateAll(posts), nil
}

func (r fakePostRepo) Search(ctx context.Context, searchWord, relationWord string) ([]*postEntity.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	contains := func(p *postEntity.Post, w string) bool {
		w = strings.ToLower(w)
		return strings.Contains(strings.ToLower(p.Title), w) || strings.Contains(strings.ToLower(p.Contents), w)
	}
	return r.hydrateAll(r.sortedPosts(func(p *postEntity.Post) bool {
		return contains(p, searchWord) && (relationWord == "" || contains(p, relationWord))
	})), nil
}

func (r fakePostRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*postEntity.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.hydrateAll(r.sortedPosts(func(p *postEntity.Post) bool { return p.UserID == userID })), nil
}

type fakeFavoriteRepo struct{ *memStore }

func (r fakeFavoriteRepo) Create(ctx context.Context, f *favoriteEntity.Favorite) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, existing := range r.memStore.favorites {
		if existing.UserID == f.UserID && existing.PostID == f.PostID {
			return false, nil
		}
	}
	f.CreatedAt = r.tick()
	r.memStore.favorites = append(r.memStore.favorites, f)
	return true, nil
}

func (r fakeFavoriteRepo) Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	kept := r.memStore.favorites[:0]
	for _, f := range r.memStore.favorites {
		if f.UserID != userID || f.PostID != postID {
			kept = append(kept, f)
		}
	}
	removed := len(kept) < len(r.memStore.favorites)
	r.memStore.favorites = kept
	return removed, nil
}

// racingFavoriteRepo sees the pair through Exists but another request
// has already inserted or removed it by the time Create or Delete runs.
type racingFavoriteRepo struct {
	fakeFavoriteRepo
	exists bool
}

func (r racingFavoriteRepo) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	return r.exists, nil
}

func (r racingFavoriteRepo) Create(ctx context.Context, f *favoriteEntity.Favorite) (bool, error) {
	return false, nil
}

func (r racingFavoriteRepo) Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	return false, nil
}

func (r fakeFavoriteRepo) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, f := range r.memStore.favorites {
		if f.UserID == userID && f.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeFavoriteRepo) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*favoriteEntity.Favorite, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*favoriteEntity.Favorite
	for _, f := range r.memStore.favorites {
		if f.PostID == postID {
			cp := *f
			cp.User = *r.users[f.UserID]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCommentRepo struct{ *memStore }

func (r fakeCommentRepo) Create(ctx context.Context, c *commentEntity.Comment) (*commentEntity.Comment, error) {
	if r.err != nil {
		return nil, r.err
	}
	c.CreatedAt = r.tick()
	r.memStore.comments = append(r.memStore.comments, c)
	return c, nil
}

func (r fakeCommentRepo) CreateSubComment(ctx context.Context, sub *commentEntity.SubComment) (*commentEntity.SubComment, error) {
	if r.err != nil {
		return nil, r.err
	}
	sub.CreatedAt = r.tick()
	r.subComments = append(r.subComments, sub)
	return sub, nil
}

func (r fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*commentEntity.Comment, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.memStore.comments {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeCommentRepo) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*commentEntity.Comment, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*commentEntity.Comment
	for _, c := range r.memStore.comments {
		if c.PostID != postID {
			continue
		}
		cp := *c
		cp.User = *r.users[c.UserID]
		cp.SubComments = nil
		for _, sub := range r.subComments {
			if sub.ParentCommentID != c.ID {
				continue
			}
			s := *sub
			if sub.UserID != nil {
				s.User = r.users[*sub.UserID]
			}
			cp.SubComments = append(cp.SubComments, s)
		}
		out = append(out, &cp)
	}
	return out, nil
}

type fakeQueueRepo struct{ *memStore }

func (r fakeQueueRepo) Enqueue(ctx context.Context, q *notification.Queue) (*notification.Queue, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.queue = append(r.queue, q)
	return q, nil
}

func (r fakeQueueRepo) GetPending(ctx context.Context, limit int64) ([]*notification.Queue, error) {
	var out []*notification.Queue
	for _, q := range r.queue {
		if q.Status == notification.StatusPending && int64(len(out)) < limit {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r fakeQueueRepo) MarkDone(ctx context.Context, id uuid.UUID) error {
	for _, q := range r.queue {
		if q.ID == id {
			q.Status = notification.StatusDone
		}
	}
	return nil
}
