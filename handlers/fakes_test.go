package handlers

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kevinaaaquil/dailypulse/backend/models"
	"github.com/kevinaaaquil/dailypulse/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for *store.DB.
type memStore struct {
	mu         sync.Mutex
	users      map[primitive.ObjectID]*models.User
	articles   map[primitive.ObjectID]*models.Article
	publishers map[primitive.ObjectID]*models.Publisher
	payments   []*models.Payment
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[primitive.ObjectID]*models.User{},
		articles:   map[primitive.ObjectID]*models.Article{},
		publishers: map[primitive.ObjectID]*models.Publisher{},
	}
}

func (s *memStore) Ping(context.Context) error { return nil }

// users

func (s *memStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memStore) CreateUser(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, errors.New("duplicate email")
		}
	}
	c := *user
	c.ID = primitive.NewObjectID()
	s.users[c.ID] = &c
	return c.ID, nil
}

func (s *memStore) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s *memStore) ListUsers(context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *memStore) UpdateProfile(_ context.Context, email, name, photoURL string) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u.Name, u.PhotoURL = name, photoURL
			return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	id := primitive.NewObjectID()
	s.users[id] = &models.User{ID: id, Email: email, Name: name, PhotoURL: photoURL, Role: models.RoleReader, CreatedAt: time.Now()}
	hex := id.Hex()
	return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &hex}, nil
}

func (s *memStore) PromoteToAdmin(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	before := *u
	u.Role = models.RoleAdmin
	return &before, nil
}

func (s *memStore) TakePremium(_ context.Context, email string) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u.PremiumTaken = models.FlagYes
			return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return nil, store.ErrNotFound
}

// articles

func (s *memStore) InsertArticle(_ context.Context, article *models.Article) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *article
	c.ID = primitive.NewObjectID()
	s.articles[c.ID] = &c
	return c.ID, nil
}

func (s *memStore) filterArticles(keep func(*models.Article) bool) []models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Article{}
	for _, a := range s.articles {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memStore) AllArticles(context.Context) ([]models.Article, error) {
	return s.filterArticles(func(*models.Article) bool { return true }), nil
}

func (s *memStore) ApprovedArticles(context.Context) ([]models.Article, error) {
	return s.filterArticles(func(a *models.Article) bool { return a.Status == models.StatusApproved }), nil
}

func (s *memStore) PremiumArticles(context.Context) ([]models.Article, error) {
	return s.filterArticles(func(a *models.Article) bool {
		return a.Status == models.StatusApproved && a.Premium()
	}), nil
}

func (s *memStore) ArticlesByAuthor(_ context.Context, email string) ([]models.Article, error) {
	return s.filterArticles(func(a *models.Article) bool { return a.Author.Email == email }), nil
}

func (s *memStore) ArticlesByCategory(_ context.Context, f store.CategoryFilter) ([]models.Article, error) {
	return s.filterArticles(func(a *models.Article) bool {
		if a.Status != models.StatusApproved {
			return false
		}
		if f.Publisher != "" && a.Publisher.Name != f.Publisher {
			return false
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.Search)) {
			return false
		}
		if len(f.Tags) == 0 {
			return true
		}
		for _, want := range f.Tags {
			for _, have := range a.Tags {
				if want == have {
					return true
				}
			}
		}
		return false
	}), nil
}

func (s *memStore) ArticleByID(_ context.Context, id primitive.ObjectID) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (s *memStore) updateArticle(id primitive.ObjectID, apply func(*models.Article)) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	apply(a)
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *memStore) UpdateArticle(_ context.Context, id primitive.ObjectID, e store.ArticleEdit) (*models.UpdateResult, error) {
	return s.updateArticle(id, func(a *models.Article) {
		a.Title, a.Description, a.Image, a.Publisher, a.Tags = e.Title, e.Description, e.Image, e.Publisher, e.Tags
	})
}

func (s *memStore) ApproveArticle(_ context.Context, id primitive.ObjectID) (*models.UpdateResult, error) {
	return s.updateArticle(id, func(a *models.Article) { a.Status = models.StatusApproved })
}

func (s *memStore) DeclineArticle(_ context.Context, id primitive.ObjectID, feedback string) (*models.UpdateResult, error) {
	return s.updateArticle(id, func(a *models.Article) {
		a.Status = models.StatusDeclined
		a.Feedback = feedback
	})
}

func (s *memStore) MakeArticlePremium(_ context.Context, id primitive.ObjectID) (*models.UpdateResult, error) {
	return s.updateArticle(id, func(a *models.Article) { a.IsPremium = models.FlagYes })
}

func (s *memStore) SetArticleViews(_ context.Context, id primitive.ObjectID, views int64) (*models.UpdateResult, error) {
	return s.updateArticle(id, func(a *models.Article) { a.Views = views })
}

func (s *memStore) DeleteArticle(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return 0, nil
	}
	delete(s.articles, id)
	return 1, nil
}

// publishers

func (s *memStore) InsertPublisher(_ context.Context, p *models.Publisher) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	c.ID = primitive.NewObjectID()
	s.publishers[c.ID] = &c
	return c.ID, nil
}

func (s *memStore) AllPublishers(context.Context) ([]models.Publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Publisher{}
	for _, p := range s.publishers {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) PublisherByID(_ context.Context, id primitive.ObjectID) (*models.Publisher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.publishers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *memStore) DeletePublisher(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.publishers[id]; !ok {
		return 0, nil
	}
	delete(s.publishers, id)
	return 1, nil
}

// payments

func (s *memStore) InsertPayment(_ context.Context, p *models.Payment) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	c.ID = primitive.NewObjectID()
	s.payments = append(s.payments, &c)
	return c.ID, nil
}

func (s *memStore) PaymentsByEmail(_ context.Context, email string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Payment{}
	for _, p := range s.payments {
		if p.Email == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memStore) Stats(context.Context) (*models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &models.Stats{
		Articles:   int64(len(s.articles)),
		Users:      int64(len(s.users)),
		Publishers: int64(len(s.publishers)),
		Payments:   int64(len(s.payments)),
	}
	for _, a := range s.articles {
		if a.Status == models.StatusApproved {
			st.ApprovedArticles++
			if a.Premium() {
				st.PremiumArticles++
			}
		}
	}
	for _, u := range s.users {
		if u.IsPremium() {
			st.PremiumUsers++
		}
	}
	for _, p := range s.payments {
		st.Revenue += p.Price
	}
	return st, nil
}

// integrations

type fakeProcessor struct {
	amounts []int64
}

func (p *fakeProcessor) CreateIntent(_ context.Context, amount int64) (string, error) {
	p.amounts = append(p.amounts, amount)
	return "pi_test_secret", nil
}

type fakeMailer struct {
	sent []*models.Payment
	err  error
}

func (m *fakeMailer) SendReceipt(p *models.Payment) error {
	m.sent = append(m.sent, p)
	return m.err
}

type fakeImages struct {
	keys    []string
	deleted []string
}

func (f *fakeImages) Upload(_ context.Context, prefix, originalFilename string, body io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	key := prefix + originalFilename
	f.keys = append(f.keys, key)
	return key, nil
}

func (f *fakeImages) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeImages) URL(key string) string {
	return "https://bucket.example/" + key
}

func (f *fakeImages) KeyFor(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, f.URL(""))
	return key, ok && key != ""
}

type fakeForgetter struct {
	forgotten []string
}

func (f *fakeForgetter) Forget(_ context.Context, email string) error {
	f.forgotten = append(f.forgotten, email)
	return nil
}
