package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
	"github.com/yamdb/yamdb-api/pkg/apperr"
)

// In-memory repositories backing the service tests. They mirror the
// database constraints the real implementations rely on, including the
// (title, author) uniqueness on reviews.

type fakeUserRepo struct {
	seq   int
	users map[string]*entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range f.users {
		if ex.Username == u.Username {
			return apperr.ValidationField("username", "already exists")
		}
		if ex.Email == u.Email {
			return apperr.ValidationField("email", "already exists")
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepo) List(_ context.Context, prefix string, limit, offset int) ([]entity.User, int, error) {
	matched := make([]entity.User, 0)
	for _, u := range f.users {
		if strings.HasPrefix(u.Username, prefix) {
			matched = append(matched, *u)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })
	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperr.NotFound("user")
	}
	for id, ex := range f.users {
		if id == u.ID {
			continue
		}
		if ex.Username == u.Username {
			return apperr.ValidationField("username", "already exists")
		}
		if ex.Email == u.Email {
			return apperr.ValidationField("email", "already exists")
		}
	}
	u.UpdatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) DeleteByUsername(_ context.Context, username string) error {
	for id, u := range f.users {
		if u.Username == username {
			delete(f.users, id)
			return nil
		}
	}
	return apperr.NotFound("user")
}

type fakeTitleRepo struct {
	seq    int64
	titles map[int64]*entity.Title
	scores map[int64][]int
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{titles: map[int64]*entity.Title{}, scores: map[int64][]int{}}
}

func (f *fakeTitleRepo) Create(_ context.Context, t *entity.Title, _ []int64) error {
	f.seq++
	t.ID = f.seq
	cp := *t
	f.titles[t.ID] = &cp
	return nil
}

func (f *fakeTitleRepo) GetByID(_ context.Context, id int64) (*entity.Title, error) {
	if t, ok := f.titles[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, apperr.NotFound("title")
}

func (f *fakeTitleRepo) List(_ context.Context, _ repository.TitleFilter, _, _ int) ([]entity.Title, int, error) {
	out := make([]entity.Title, 0, len(f.titles))
	for _, t := range f.titles {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (f *fakeTitleRepo) Update(_ context.Context, t *entity.Title, _ []int64) error {
	if _, ok := f.titles[t.ID]; !ok {
		return apperr.NotFound("title")
	}
	cp := *t
	f.titles[t.ID] = &cp
	return nil
}

func (f *fakeTitleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.titles[id]; !ok {
		return apperr.NotFound("title")
	}
	delete(f.titles, id)
	return nil
}

func (f *fakeTitleRepo) AverageScore(_ context.Context, id int64) (*float64, error) {
	scores := f.scores[id]
	if len(scores) == 0 {
		return nil, nil
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return &avg, nil
}

type fakeReviewRepo struct {
	seq     int64
	titles  *fakeTitleRepo
	reviews map[int64]*entity.Review
}

func newFakeReviewRepo(titles *fakeTitleRepo) *fakeReviewRepo {
	return &fakeReviewRepo{titles: titles, reviews: map[int64]*entity.Review{}}
}

func (f *fakeReviewRepo) Create(_ context.Context, rv *entity.Review) error {
	for _, ex := range f.reviews {
		if ex.TitleID == rv.TitleID && ex.AuthorID == rv.AuthorID {
			// mirrors the unique constraint translation
			return apperr.ValidationField("title", "already exists")
		}
	}
	f.seq++
	rv.ID = f.seq
	rv.PubDate = time.Now()
	cp := *rv
	f.reviews[rv.ID] = &cp
	if f.titles != nil {
		f.titles.scores[rv.TitleID] = append(f.titles.scores[rv.TitleID], rv.Score)
	}
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, titleID, id int64) (*entity.Review, error) {
	if rv, ok := f.reviews[id]; ok && rv.TitleID == titleID {
		cp := *rv
		return &cp, nil
	}
	return nil, apperr.NotFound("review")
}

func (f *fakeReviewRepo) ListByTitle(_ context.Context, titleID int64, limit, offset int) ([]entity.Review, int, error) {
	out := make([]entity.Review, 0)
	for _, rv := range f.reviews {
		if rv.TitleID == titleID {
			out = append(out, *rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.Before(out[j].PubDate) })
	return out, len(out), nil
}

func (f *fakeReviewRepo) ExistsByTitleAuthor(_ context.Context, titleID int64, authorID string) (bool, error) {
	for _, rv := range f.reviews {
		if rv.TitleID == titleID && rv.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, rv *entity.Review) error {
	if _, ok := f.reviews[rv.ID]; !ok {
		return apperr.NotFound("review")
	}
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, titleID, id int64) error {
	if rv, ok := f.reviews[id]; ok && rv.TitleID == titleID {
		delete(f.reviews, id)
		return nil
	}
	return apperr.NotFound("review")
}

type fakeCommentRepo struct {
	seq      int64
	comments map[int64]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*entity.Comment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	f.seq++
	c.ID = f.seq
	c.PubDate = time.Now()
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, reviewID, id int64) (*entity.Comment, error) {
	if c, ok := f.comments[id]; ok && c.ReviewID == reviewID {
		cp := *c
		return &cp, nil
	}
	return nil, apperr.NotFound("comment")
}

func (f *fakeCommentRepo) ListByReview(_ context.Context, reviewID int64, limit, offset int) ([]entity.Comment, int, error) {
	out := make([]entity.Comment, 0)
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.Before(out[j].PubDate) })
	return out, len(out), nil
}

func (f *fakeCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	if _, ok := f.comments[c.ID]; !ok {
		return apperr.NotFound("comment")
	}
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, reviewID, id int64) error {
	if c, ok := f.comments[id]; ok && c.ReviewID == reviewID {
		delete(f.comments, id)
		return nil
	}
	return apperr.NotFound("comment")
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

var (
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.TitleRepository   = (*fakeTitleRepo)(nil)
	_ repository.ReviewRepository  = (*fakeReviewRepo)(nil)
	_ repository.CommentRepository = (*fakeCommentRepo)(nil)
)
